package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field level validation errors carry details
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		Unauthorized(w, "Account no longer exists")

	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Error kinds shared by every domain
	case apperror.IsValidation(err):
		BadRequest(w, apperror.Message(err), nil)
	case apperror.IsPermission(err):
		Forbidden(w, apperror.Message(err))
	case apperror.IsNotFound(err):
		NotFound(w, apperror.Message(err))

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
