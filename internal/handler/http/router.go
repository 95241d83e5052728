package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the deployment settings the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level

	// Logger overrides the ECS request logger, mainly for tests
	Logger *slog.Logger
}

type Handlers struct {
	Auth       AuthHandler
	User       UserHandler
	Attendance AttendanceHandler
	Delegation DelegationHandler
	Capacity   CapacityHandler
	Analytics  AnalyticsHandler
	Events     EventsHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, userRepo user.UserRepository, delegationRepo delegation.DelegationRepository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       cfg.LogLevel,
			ReplaceAttr: logFormat.ReplaceAttr,
		})).With(
			slog.String("app", cfg.AppName),
			slog.String("version", cfg.Version),
			slog.String("env", cfg.Env),
		)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// The stream authenticates with its own short-lived token
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.Session(userRepo, delegationRepo))

			r.Get("/events/token", h.Events.GetSSEToken)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.User.Me)
				r.Post("/first-login", h.User.CompleteFirstLogin)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
				r.Get("/{id}/reports", h.User.DirectReports)
				r.Patch("/{id}", h.User.Update)
				r.Put("/{id}", h.User.Update)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.User.Create)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/my-team", h.User.MyTeam)
				r.With(middleware.RequirePermission(user.PermissionTeamViewHierarchy)).Get("/hierarchy", h.User.Hierarchy)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Set)
				r.Post("/allocate", h.Attendance.Allocate)
			})

			r.Route("/delegations", func(r chi.Router) {
				r.Get("/", h.Delegation.List)
				r.Get("/active", h.Delegation.Active)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDelegationManage))
					r.Post("/", h.Delegation.Create)
					r.Delete("/", h.Delegation.Revoke)
					r.Delete("/{id}", h.Delegation.Revoke)
				})
			})

			r.Route("/office-capacity", func(r chi.Router) {
				r.Get("/", h.Capacity.GetWeek)
				r.Get("/settings", h.Capacity.ListSettings)
				r.Put("/settings/{day}", h.Capacity.UpdateSetting)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/personal", h.Analytics.Personal)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAnalyticsView))
					r.Get("/", h.Analytics.Get)
					r.Get("/overview", h.Analytics.Overview)
					r.Get("/occupancy", h.Analytics.Occupancy)
					r.Get("/weekly-pattern", h.Analytics.WeeklyPattern)
					r.Get("/status-distribution", h.Analytics.StatusDistribution)
				})
			})
		})
	})
	return r
}
