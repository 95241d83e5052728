package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// Logout revokes the refresh token and blocks the access token until it expires
	Logout(ctx context.Context, accessToken string, refreshToken string) error
}
