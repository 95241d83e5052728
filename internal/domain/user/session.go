package user

import (
	"context"
	"time"
)

// Session is the acting user for one request: a snapshot of the user, the
// effective permissions (role plus any active delegation) and the instant
// the request is evaluated at. It is built once by the HTTP layer and passed
// explicitly to every service call.
type Session struct {
	User        User
	Permissions PermissionSet
	Delegated   bool
	Now         time.Time
}

// NewSession builds a session with role permissions only.
func NewSession(u User, now time.Time) Session {
	return Session{
		User:        u,
		Permissions: PermissionsFor(u.Role),
		Now:         now,
	}
}

func (s Session) Can(p Permission) bool {
	return s.Permissions.Has(p)
}

// CanAccessAdmin applies the admin predicate to the session user.
func (s Session) CanAccessAdmin() bool {
	return CanAccessAdmin(s.User, s.Delegated)
}

type sessionKey struct{}

// WithSession stores the session on ctx for the HTTP layer.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
