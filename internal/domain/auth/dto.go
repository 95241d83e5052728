package auth

import (
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) > 255 {
		errs.Add("password", "password must not exceed 255 characters")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refreshToken", "refreshToken is required")
	} else if len(r.RefreshToken) > 1024 {
		errs.Add("refreshToken", "refreshToken must not exceed 1024 characters")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn"`
	IsFirstLogin          bool   `json:"isFirstLogin"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"accessToken"`
	AccessTokenExpiresIn int64  `json:"accessTokenExpiresIn"`
}
