package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with APP_STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Redis     RedisConfig
	Office    OfficeConfig
	Bootstrap BootstrapConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	Version     string

	// Storage is StoragePostgres, or StorageMemory for local runs without a database
	Storage string
}

// RedisConfig holds the read cache configuration. An empty Addr selects the
// in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// OfficeConfig holds attendance domain settings
type OfficeConfig struct {
	DefaultCapacity         int
	DelegationSweepInterval time.Duration
}

// BootstrapConfig seeds the first Tribe Lead on an empty database.
type BootstrapConfig struct {
	TribeLeadEmail    string
	TribeLeadName     string
	TribeLeadPassword string
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "office_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:5173"),
		Version:     getEnv("APP_VERSION", "v0.1.0"),
		Storage:     strings.ToLower(getEnv("APP_STORAGE", StoragePostgres)),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Redis configuration
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		TTL:      cacheTTL,
	}

	// Office configuration
	defaultCapacity, err := getEnvInt("OFFICE_DEFAULT_CAPACITY", 0)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getEnvDuration("DELEGATION_SWEEP_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	config.Office = OfficeConfig{
		DefaultCapacity:         defaultCapacity,
		DelegationSweepInterval: sweepInterval,
	}

	config.Bootstrap = BootstrapConfig{
		TribeLeadEmail:    strings.ToLower(getEnv("BOOTSTRAP_TRIBE_LEAD_EMAIL", "")),
		TribeLeadName:     getEnv("BOOTSTRAP_TRIBE_LEAD_NAME", "Tribe Lead"),
		TribeLeadPassword: getEnv("BOOTSTRAP_TRIBE_LEAD_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.Storage {
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("APP_STORAGE must be %q or %q", StoragePostgres, StorageMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.ParseDuration(c.JWT.RefreshExpiration); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}
	if c.Office.DefaultCapacity < 0 {
		return fmt.Errorf("OFFICE_DEFAULT_CAPACITY must not be negative")
	}
	if c.Bootstrap.TribeLeadEmail != "" && c.Bootstrap.TribeLeadPassword == "" {
		return fmt.Errorf("BOOTSTRAP_TRIBE_LEAD_PASSWORD is required when BOOTSTRAP_TRIBE_LEAD_EMAIL is set")
	}
	return nil
}

// SlogLevel parses LogLevel, falling back to info.
func (c AppConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
