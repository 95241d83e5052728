package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/config"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/office-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/office-attendance-go/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/office-attendance-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/office-attendance-go/internal/service/auth"
	capacityService "github.com/cmlabs-hris/office-attendance-go/internal/service/capacity"
	delegationService "github.com/cmlabs-hris/office-attendance-go/internal/service/delegation"
	userService "github.com/cmlabs-hris/office-attendance-go/internal/service/user"
)

const appName = "office-attendance"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(slog.String("app", appName), slog.String("env", cfg.App.Env)))

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Error opening storage", "storage", cfg.App.Storage, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	readCache, closeCache := newCache(ctx, cfg.Redis)
	defer closeCache()

	userRepo := repos.users
	attendanceRepo := repos.attendance
	delegationRepo := repos.delegations
	settingRepo := repos.settings
	refreshTokenRepo := repos.refreshTokens
	transactor := repos.tx

	seeder := fixtures.NewSeeder(userRepo, settingRepo, cfg.Office.DefaultCapacity, fixtures.TribeLead{
		Email:    cfg.Bootstrap.TribeLeadEmail,
		Name:     cfg.Bootstrap.TribeLeadName,
		Password: cfg.Bootstrap.TribeLeadPassword,
	})
	if err := seeder.Seed(ctx); err != nil {
		slog.Error("Error seeding defaults", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authService := serviceAuth.NewAuthService(transactor, userRepo, JWTService, refreshTokenRepo)
	userSvc := userService.NewUserService(transactor, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, readCache, hub)
	delegationSvc := delegationService.NewDelegationService(delegationRepo, userRepo, hub)
	capacitySvc := capacityService.NewCapacityService(settingRepo, attendanceRepo, readCache, hub, capacityService.Config{
		DefaultCapacity: cfg.Office.DefaultCapacity,
		CacheTTL:        cfg.Redis.TTL,
	})
	analyticsSvc := analyticsService.NewAnalyticsService(attendanceRepo, userRepo, readCache, analyticsService.Config{
		CacheTTL: cfg.Redis.TTL,
	})

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(delegationSvc, JWTService, cfg.Office.DelegationSweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: strings.Split(cfg.App.FrontendURL, ","),
			AppName:        appName,
			Version:        cfg.App.Version,
			Env:            cfg.App.Env,
			LogLevel:       cfg.App.SlogLevel(),
		},
		JWTService,
		userRepo,
		delegationRepo,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authService),
			User:       appHTTP.NewUserHandler(userSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Delegation: appHTTP.NewDelegationHandler(delegationSvc),
			Capacity:   appHTTP.NewCapacityHandler(capacitySvc),
			Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
			Events:     appHTTP.NewEventsHandler(JWTService, hub),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped")
}

type repositories struct {
	users         user.UserRepository
	attendance    attendance.AttendanceRepository
	delegations   delegation.DelegationRepository
	settings      capacity.SettingRepository
	refreshTokens auth.RefreshTokenRepository
	tx            postgresql.Transactor
	close         func()
}

// openRepositories connects and migrates PostgreSQL, or builds the
// in-process stores when APP_STORAGE=memory.
func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.App.Storage == config.StorageMemory {
		slog.Warn("Using in-process storage, data is lost on restart")
		users := memory.NewUsers()
		return repositories{
			users:         users,
			attendance:    memory.NewAttendance(),
			delegations:   memory.NewDelegations(users),
			settings:      memory.NewSettings(),
			refreshTokens: memory.NewRefreshTokens(),
			tx:            memory.Transactor{},
			close:         func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return repositories{}, fmt.Errorf("connect: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return repositories{}, fmt.Errorf("migrate: %w", err)
	}
	return repositories{
		users:         postgresql.NewUserRepository(db),
		attendance:    postgresql.NewAttendanceRepository(db),
		delegations:   postgresql.NewDelegationRepository(db),
		settings:      postgresql.NewSettingRepository(db),
		refreshTokens: postgresql.NewRefreshTokenRepository(db),
		tx:            postgresql.NewTransactor(db),
		close:         db.Close,
	}, nil
}

// newCache picks Redis when configured and the in-process cache otherwise.
func newCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, func()) {
	if cfg.Addr == "" {
		return cache.NewMemory(), func() {}
	}
	redisCache, err := cache.NewRedis(ctx, cfg.Addr, cfg.Password, cfg.DB, appName+":")
	if err != nil {
		slog.Warn("Redis unavailable, using in-process cache", "addr", cfg.Addr, "error", err)
		return cache.NewMemory(), func() {}
	}
	slog.Info("Using Redis read cache", "addr", cfg.Addr)
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			slog.Warn("Redis close", "error", err)
		}
	}
}
