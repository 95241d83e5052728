package fixtures

import (
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
)

// workingDays are the weekdays that get a capacity row on a fresh database
var workingDays = capacity.DaysOfWeek[:5]

// GetDefaultCapacitySettings returns one Monday-Friday setting per day with
// the configured default capacity.
func GetDefaultCapacitySettings(defaultCapacity int) []capacity.Setting {
	settings := make([]capacity.Setting, 0, len(workingDays))
	for _, day := range workingDays {
		settings = append(settings, capacity.Setting{
			DayOfWeek: day,
			Capacity:  defaultCapacity,
		})
	}
	return settings
}
