package capacity

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type CapacityService interface {
	// GetWeek returns the capacity breakdown of the week at weekOffset
	GetWeek(ctx context.Context, s user.Session, weekOffset int) (WeekCapacityResponse, error)

	// ListSettings returns the per-weekday capacity settings
	ListSettings(ctx context.Context) ([]SettingResponse, error)

	// UpdateSetting changes one weekday's capacity (capacity.manage)
	UpdateSetting(ctx context.Context, s user.Session, req UpdateSettingRequest) (SettingResponse, error)
}
