package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
)

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

type RefreshTokens struct {
	failer
	mu     sync.RWMutex
	tokens map[string]refreshToken
}

func NewRefreshTokens() *RefreshTokens {
	return &RefreshTokens{tokens: make(map[string]refreshToken)}
}

func (r *RefreshTokens) Create(_ context.Context, userID string, token string, expiresAt int64, _ auth.SessionTrackingRequest) error {
	if err := r.writeErr(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r *RefreshTokens) IsRevoked(_ context.Context, token string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return t.userID, t.revoked || !t.expiresAt.After(clock()), nil
}

func (r *RefreshTokens) Revoke(_ context.Context, token string) error {
	if err := r.writeErr(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.revoked = true
		r.tokens[token] = t
	}
	return nil
}
