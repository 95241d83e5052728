package delegation

import (
	"context"
	"time"
)

type DelegationRepository interface {
	// List returns every delegation, newest first
	List(ctx context.Context) ([]Delegation, error)

	// ListByDelegate returns delegations naming the user as delegate
	ListByDelegate(ctx context.Context, delegateID string) ([]Delegation, error)

	GetByID(ctx context.Context, id string) (Delegation, error)
	Create(ctx context.Context, d Delegation) (Delegation, error)

	// Deactivate sets is_active=false; the row is kept as history
	Deactivate(ctx context.Context, id string) (Delegation, error)

	// DeactivateExpired deactivates active delegations whose end date is before asOf
	DeactivateExpired(ctx context.Context, asOf time.Time) (int64, error)
}
