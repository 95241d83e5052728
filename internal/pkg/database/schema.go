package database

import (
	"context"
	"fmt"
	"log/slog"
)

// schema creates every table the service needs. Statements are idempotent
// so Migrate can run on each start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(254) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('REPORTER', 'CHAPTER_LEAD', 'TRIBE_LEAD')),
		chapter_lead_id UUID REFERENCES users(id) ON DELETE RESTRICT,
		team_name VARCHAR(255),
		avatar TEXT,
		password_hash TEXT,
		is_first_login BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_reporter_has_lead CHECK (
			(role = 'REPORTER' AND chapter_lead_id IS NOT NULL)
			OR (role <> 'REPORTER' AND chapter_lead_id IS NULL)
		)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_single_tribe_lead ON users (role) WHERE role = 'TRIBE_LEAD'`,
	`CREATE INDEX IF NOT EXISTS idx_users_chapter_lead_id ON users (chapter_lead_id)`,

	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		status VARCHAR(10) NOT NULL CHECK (status IN ('office', 'remote', 'absent')),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date)`,

	`CREATE TABLE IF NOT EXISTS delegations (
		id UUID PRIMARY KEY,
		delegator_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		delegate_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date > start_date),
		CHECK (delegator_id <> delegate_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_delegations_delegate_active ON delegations (delegate_id) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS office_capacity_settings (
		id UUID PRIMARY KEY,
		day_of_week VARCHAR(10) NOT NULL UNIQUE,
		capacity INTEGER NOT NULL CHECK (capacity >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		user_agent TEXT,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_token_hash ON refresh_tokens (token_hash)`,
}

// Migrate applies the schema.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	slog.Info("Database schema up to date", "statements", len(schema))
	return nil
}
