package postgresql

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/database"
)

type settingRepositoryImpl struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) capacity.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// List implements capacity.SettingRepository. Rows come back Monday first.
func (r *settingRepositoryImpl) List(ctx context.Context) ([]capacity.Setting, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, day_of_week, capacity, updated_at
		FROM office_capacity_settings
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday']::varchar[], day_of_week)
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []capacity.Setting
	for rows.Next() {
		var s capacity.Setting
		if err := rows.Scan(&s.ID, &s.DayOfWeek, &s.Capacity, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Upsert implements capacity.SettingRepository.
func (r *settingRepositoryImpl) Upsert(ctx context.Context, setting capacity.Setting) (capacity.Setting, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return capacity.Setting{}, err
	}

	var saved capacity.Setting
	err = q.QueryRow(ctx, `
		INSERT INTO office_capacity_settings (id, day_of_week, capacity)
		VALUES ($1, $2, $3)
		ON CONFLICT (day_of_week) DO UPDATE
		SET capacity = EXCLUDED.capacity, updated_at = NOW()
		RETURNING id, day_of_week, capacity, updated_at
	`, id, string(setting.DayOfWeek), setting.Capacity).Scan(&saved.ID, &saved.DayOfWeek, &saved.Capacity, &saved.UpdatedAt)
	if err != nil {
		return capacity.Setting{}, err
	}
	return saved, nil
}
