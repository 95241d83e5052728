package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection of the integration tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// It returns nil when the variable is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables removes every row, children first.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"refresh_tokens",
		"attendance_records",
		"delegations",
		"office_capacity_settings",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
