package user

import (
	"context"
)

// UserFilter narrows List results.
type UserFilter struct {
	Search        *string
	Role          *Role
	ChapterLeadID *string
}

type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role Role) (int64, error)
	CountReporters(ctx context.Context, chapterLeadID string) (int64, error)
	CompleteFirstLogin(ctx context.Context, id string) error
}
