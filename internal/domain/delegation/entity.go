package delegation

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

// Delegation is a time-bounded grant of admin permissions from the tribe
// lead to a chapter lead. StartDate and EndDate are calendar days and both
// bounds are inclusive.
type Delegation struct {
	ID          string
	DelegatorID string
	DelegateID  string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	RevokedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	DelegatorName *string
	DelegateName  *string
}

// IsActiveAt reports whether d grants permissions on asOf:
// d.IsActive && StartDate <= asOf <= EndDate.
func (d Delegation) IsActiveAt(asOf time.Time) bool {
	return d.IsActive && calendar.InRange(asOf, d.StartDate, d.EndDate)
}

// IsExpiredAt reports whether the window closed before asOf.
func (d Delegation) IsExpiredAt(asOf time.Time) bool {
	return calendar.Day(d.EndDate).Before(calendar.Day(asOf))
}

// ActiveFor returns the first delegation that currently makes userID an
// acting admin.
func ActiveFor(userID string, delegations []Delegation, asOf time.Time) (Delegation, bool) {
	for _, d := range delegations {
		if d.DelegateID == userID && d.IsActiveAt(asOf) {
			return d, true
		}
	}
	return Delegation{}, false
}

// EffectivePermissions is the union of the user's role permissions and, when
// one of the delegations naming the user as delegate is active, the
// delegated admin group. The user's role itself is unchanged.
func EffectivePermissions(u user.User, delegations []Delegation, asOf time.Time) (user.PermissionSet, bool) {
	perms := user.PermissionsFor(u.Role)
	if _, ok := ActiveFor(u.ID, delegations, asOf); ok {
		perms.Add(user.DelegatedPermissions...)
		return perms, true
	}
	return perms, false
}

// CanAccessAdmin: tribe lead, or delegate of a currently active delegation.
func CanAccessAdmin(u user.User, delegations []Delegation, asOf time.Time) bool {
	_, delegated := ActiveFor(u.ID, delegations, asOf)
	return user.CanAccessAdmin(u, delegated)
}

// NewSession builds the request session for u from its delegations.
func NewSession(u user.User, delegations []Delegation, now time.Time) user.Session {
	perms, delegated := EffectivePermissions(u, delegations, now)
	return user.Session{
		User:        u,
		Permissions: perms,
		Delegated:   delegated,
		Now:         now,
	}
}
