package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
)

// currentSession returns the session built by middleware.Session and writes
// a 401 when it is missing.
func currentSession(w http.ResponseWriter, r *http.Request) (user.Session, bool) {
	s, ok := user.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
	}
	return s, ok
}

// queryPtr returns the trimmed query value, or nil when absent or blank.
func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}
