package capacity

import "context"

type SettingRepository interface {
	// List returns the configured weekdays in Monday-first order
	List(ctx context.Context) ([]Setting, error)

	// Upsert sets the capacity of setting.DayOfWeek
	Upsert(ctx context.Context, setting Setting) (Setting, error)
}
