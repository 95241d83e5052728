package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// TribeLead describes the account created when the database has no tribe lead.
type TribeLead struct {
	Email    string
	Name     string
	Password string
}

// Seeder fills an empty database with the data the service cannot run without.
type Seeder struct {
	users           user.UserRepository
	settings        capacity.SettingRepository
	defaultCapacity int
	tribeLead       TribeLead
}

func NewSeeder(users user.UserRepository, settings capacity.SettingRepository, defaultCapacity int, tribeLead TribeLead) *Seeder {
	return &Seeder{
		users:           users,
		settings:        settings,
		defaultCapacity: defaultCapacity,
		tribeLead:       tribeLead,
	}
}

// Seed is safe to run on every start; existing data is never overwritten.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedCapacitySettings(ctx); err != nil {
		return err
	}
	return s.seedTribeLead(ctx)
}

func (s *Seeder) seedCapacitySettings(ctx context.Context) error {
	existing, err := s.settings.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list capacity settings: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := GetDefaultCapacitySettings(s.defaultCapacity)
	for _, setting := range defaults {
		if _, err := s.settings.Upsert(ctx, setting); err != nil {
			return fmt.Errorf("failed to seed capacity for %s: %w", setting.DayOfWeek, err)
		}
	}
	slog.Info("Seeded default capacity settings", "days", len(defaults), "capacity", s.defaultCapacity)
	return nil
}

func (s *Seeder) seedTribeLead(ctx context.Context) error {
	if s.tribeLead.Email == "" {
		return nil
	}
	n, err := s.users.CountByRole(ctx, user.RoleTribeLead)
	if err != nil {
		return fmt.Errorf("failed to count tribe leads: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.tribeLead.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash tribe lead password: %w", err)
	}
	hashed := string(hash)

	created, err := s.users.Create(ctx, user.User{
		Email:        strings.ToLower(strings.TrimSpace(s.tribeLead.Email)),
		Name:         s.tribeLead.Name,
		Role:         user.RoleTribeLead,
		PasswordHash: &hashed,
		IsFirstLogin: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create tribe lead: %w", err)
	}
	slog.Info("Seeded tribe lead", "user_id", created.ID, "email", created.Email)
	return nil
}
