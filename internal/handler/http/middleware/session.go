package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// Session loads the token's user and delegations and stores the resulting
// user.Session on the request context. It runs after AuthRequired.
func Session(users user.UserRepository, delegations delegation.DelegationRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, auth.ErrUserNotFound)
					return
				}
				slog.Error("session user lookup failed", "user_id", userID, "error", err)
				response.InternalServerError(w, "Failed to load session")
				return
			}

			var grants []delegation.Delegation
			if u.Role == user.RoleChapterLead {
				grants, err = delegations.ListByDelegate(r.Context(), u.ID)
				if err != nil {
					slog.Error("session delegation lookup failed", "user_id", userID, "error", err)
					response.InternalServerError(w, "Failed to load session")
					return
				}
			}

			s := delegation.NewSession(u, grants, time.Now())
			next.ServeHTTP(w, r.WithContext(user.WithSession(r.Context(), s)))
		})
	}
}
