package auth

import "context"

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked. Tokens are stored hashed.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error

	// IsRevoked reports whether the token is revoked or expired, and whose it is
	IsRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)

	Revoke(ctx context.Context, token string) error
}
