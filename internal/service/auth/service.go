package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx postgresql.Transactor
	user.UserRepository
	jwt.Service
	auth.RefreshTokenRepository
}

func NewAuthService(tx postgresql.Transactor, userRepository user.UserRepository, jwtService jwt.Service, refreshTokenRepository auth.RefreshTokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	tokenResponse := auth.TokenResponse{IsFirstLogin: userData.IsFirstLogin}
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.RefreshTokenRepository.Create(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("User logged in", "user_id", userData.ID, "ip_address", sessionTrackReq.IPAddress)
	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. Verify JWT signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry
	userID, isRevoked, err := a.RefreshTokenRepository.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Reload the user so role changes reach the new token
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		if token, err := jwtauth.VerifyToken(a.JWTAuth(), accessToken); err == nil {
			a.Service.RevokeToken(accessToken, token.Expiration().Unix())
		}
	}
	if refreshToken == "" {
		return nil
	}

	return a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		_, isRevoked, err := a.RefreshTokenRepository.IsRevoked(txCtx, refreshToken)
		if errors.Is(err, auth.ErrInvalidToken) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.RefreshTokenRepository.Revoke(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}
