package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
)

// RequirePermission checks the session's effective permissions, so a
// delegated chapter lead passes admin checks while the delegation is active.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := user.SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !s.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, s.User.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows the tribe lead and chapter leads holding an active delegation
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := user.SessionFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !s.CanAccessAdmin() {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
