package user

import "context"

// UserService covers user administration and team views.
type UserService interface {
	// Me returns the session user and its effective permissions
	Me(ctx context.Context, s Session) (MeResponse, error)

	// CompleteFirstLogin clears the first-login flag of the session user
	CompleteFirstLogin(ctx context.Context, s Session) (UserResponse, error)

	List(ctx context.Context, s Session, search string) ([]UserResponse, error)
	Get(ctx context.Context, s Session, id string) (UserResponse, error)

	// Create requires user management rights and enforces the hierarchy invariants
	Create(ctx context.Context, s Session, req CreateUserRequest) (UserResponse, error)

	// Update applies a partial update; hierarchy changes require user management rights
	Update(ctx context.Context, s Session, req UpdateUserRequest) (UserResponse, error)

	Delete(ctx context.Context, s Session, id string) error

	// DirectReports lists users directly below the given user
	DirectReports(ctx context.Context, s Session, id string) ([]UserResponse, error)

	MyTeam(ctx context.Context, s Session) (MyTeamResponse, error)
	Hierarchy(ctx context.Context, s Session) (HierarchyResponse, error)
}
