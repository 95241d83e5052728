package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, time.Hour, cfg.Office.DelegationSweepInterval)
	assert.Equal(t, 0, cfg.Office.DefaultCapacity)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)
}

func TestLoad_MemoryStorage(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("APP_STORAGE", "Memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OFFICE_DEFAULT_CAPACITY", "25")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("BOOTSTRAP_TRIBE_LEAD_EMAIL", "Lead@Example.com")
	t.Setenv("BOOTSTRAP_TRIBE_LEAD_PASSWORD", "changeme123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Office.DefaultCapacity)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "lead@example.com", cfg.Bootstrap.TribeLeadEmail)
}

func TestLoad_Invalid(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_PORT", "not-a-port")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Password: "x"},
		JWT:      JWTConfig{Secret: "s", AccessExpiration: "1h", RefreshExpiration: "24h"},
		App:      AppConfig{Storage: StoragePostgres},
	}
	require.NoError(t, cfg.Validate())

	cfg.Database.Password = ""
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	cfg.App.Storage = StorageMemory
	require.NoError(t, cfg.Validate())
	cfg.App.Storage = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "APP_STORAGE")
	cfg.App.Storage = StoragePostgres
	cfg.Database.Password = "x"

	cfg.Office.DefaultCapacity = -1
	assert.Error(t, cfg.Validate())

	cfg.Office.DefaultCapacity = 0
	cfg.JWT.Secret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY")
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, AppConfig{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, AppConfig{LogLevel: "WARN"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, AppConfig{LogLevel: "verbose"}.SlogLevel())
}
