package delegation

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type DelegationService interface {
	// Create grants admin permissions from the tribe lead to a chapter lead
	Create(ctx context.Context, s user.Session, req CreateDelegationRequest) (DelegationResponse, error)

	// Revoke deactivates a delegation; revoking an inactive one is a no-op
	Revoke(ctx context.Context, s user.Session, id string) (DelegationResponse, error)

	// List returns all delegations for the tribe lead, own delegations otherwise
	List(ctx context.Context, s user.Session) ([]DelegationResponse, error)

	// Active returns the session user's currently active delegation
	Active(ctx context.Context, s user.Session) (ActiveDelegationResponse, error)

	// ExpireStale deactivates delegations whose window has passed
	ExpireStale(ctx context.Context) error
}
