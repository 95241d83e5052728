package capacity

import (
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DaysOfWeek lists the days in Monday-first order.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DaysOfWeek {
		if d == known {
			return d, nil
		}
	}
	return "", ErrInvalidDayOfWeek
}

// DayOf returns the DayOfWeek of a date.
func DayOf(t time.Time) DayOfWeek {
	return DaysOfWeek[(int(t.Weekday())+6)%7]
}

// Setting is the organization-wide office capacity of one weekday.
type Setting struct {
	ID        string
	DayOfWeek DayOfWeek
	Capacity  int
	UpdatedAt time.Time
}

// DayCapacity is the booking state of one working day.
type DayCapacity struct {
	Date               time.Time
	DayOfWeek          DayOfWeek
	Capacity           int
	Booked             int
	Available          int
	IsOverbooked       bool
	UtilizationPercent int
}

// WeekCapacity is the Monday-Friday breakdown of one week plus its summary.
type WeekCapacity struct {
	WeekOffset         int
	WeekStart          time.Time
	WeekEnd            time.Time
	Days               []DayCapacity
	TotalCapacity      int
	TotalAvailable     int
	TotalBookings      int
	AverageUtilization float64
	OverbookedDays     int
}
