package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// hashToken hashes the input string using SHA256 and encodes the result in base64.
func hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepositoryImpl) Create(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, userID, hashToken(token), time.Unix(expiresAt, 0).UTC(), sessionReq.UserAgent, sessionReq.IPAddress)
	return err
}

func (r *refreshTokenRepositoryImpl) IsRevoked(ctx context.Context, token string) (string, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`

	var userID string
	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, hashToken(token)).Scan(&userID, &revokedAt, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, auth.ErrInvalidToken
	}
	if err != nil {
		return "", false, err
	}

	return userID, revokedAt != nil || !expiresAt.After(time.Now()), nil
}

func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, hashToken(token))
	return err
}
