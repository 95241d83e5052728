package capacity

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type UpdateSettingRequest struct {
	DayOfWeek string `json:"-"`
	Capacity  *int   `json:"capacity"`

	day DayOfWeek
}

func (r *UpdateSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	day, err := ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		errs.Add("dayOfWeek", "dayOfWeek must be one of monday..sunday")
	}
	if r.Capacity == nil {
		errs.Add("capacity", "capacity is required")
	} else if *r.Capacity < 0 {
		errs.Add("capacity", "capacity must not be negative")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	r.day = day
	return nil
}

// Setting returns the setting to store; valid after Validate.
func (r *UpdateSettingRequest) Setting() Setting {
	return Setting{DayOfWeek: r.day, Capacity: *r.Capacity}
}

type SettingResponse struct {
	ID        string    `json:"id"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	Capacity  int       `json:"capacity"`
	UpdatedAt string    `json:"updatedAt"`
}

func NewSettingResponse(s Setting) SettingResponse {
	return SettingResponse{
		ID:        s.ID,
		DayOfWeek: s.DayOfWeek,
		Capacity:  s.Capacity,
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

type DayCapacityResponse struct {
	Day                DayOfWeek `json:"day"`
	Date               string    `json:"date"`
	Capacity           int       `json:"capacity"`
	Booked             int       `json:"booked"`
	Available          int       `json:"available"`
	IsOverbooked       bool      `json:"isOverbooked"`
	UtilizationPercent int       `json:"utilizationPercent"`
}

type WeekSummaryResponse struct {
	TotalCapacity      int     `json:"totalCapacity"`
	TotalAvailable     int     `json:"totalAvailable"`
	TotalBookings      int     `json:"totalBookings"`
	AverageUtilization float64 `json:"averageUtilization"`
	OverbookedDays     int     `json:"overbookedDays"`
}

type WeekCapacityResponse struct {
	WeekOffset       int                   `json:"weekOffset"`
	WeekStart        string                `json:"weekStart"`
	WeekEnd          string                `json:"weekEnd"`
	WeekData         []DayCapacityResponse `json:"weekData"`
	Summary          WeekSummaryResponse   `json:"summary"`
	CapacitySettings []SettingResponse     `json:"capacitySettings"`
}

func NewWeekCapacityResponse(w WeekCapacity, settings []Setting) WeekCapacityResponse {
	resp := WeekCapacityResponse{
		WeekOffset: w.WeekOffset,
		WeekStart:  calendar.Key(w.WeekStart),
		WeekEnd:    calendar.Key(w.WeekEnd),
		WeekData:   make([]DayCapacityResponse, 0, len(w.Days)),
		Summary: WeekSummaryResponse{
			TotalCapacity:      w.TotalCapacity,
			TotalAvailable:     w.TotalAvailable,
			TotalBookings:      w.TotalBookings,
			AverageUtilization: w.AverageUtilization,
			OverbookedDays:     w.OverbookedDays,
		},
		CapacitySettings: make([]SettingResponse, 0, len(settings)),
	}
	for _, d := range w.Days {
		resp.WeekData = append(resp.WeekData, DayCapacityResponse{
			Day:                d.DayOfWeek,
			Date:               calendar.Key(d.Date),
			Capacity:           d.Capacity,
			Booked:             d.Booked,
			Available:          d.Available,
			IsOverbooked:       d.IsOverbooked,
			UtilizationPercent: d.UtilizationPercent,
		})
	}
	for _, s := range settings {
		resp.CapacitySettings = append(resp.CapacitySettings, NewSettingResponse(s))
	}
	return resp
}
