package capacity

import (
	"math"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

// ComputeWeek derives the Monday-Friday capacity of the week weekOffset
// weeks away from today. Only office records count as bookings and a user
// is booked at most once per day. Weekdays without a setting use
// defaultCapacity.
func ComputeWeek(today time.Time, weekOffset int, records []attendance.Record, settings []Setting, defaultCapacity int) WeekCapacity {
	monday, sunday := calendar.WeekOf(today, weekOffset)

	capacities := make(map[DayOfWeek]int, len(settings))
	for _, s := range settings {
		capacities[s.DayOfWeek] = s.Capacity
	}

	booked := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.Status != attendance.StatusOffice || !calendar.InRange(r.Date, monday, sunday) {
			continue
		}
		key := calendar.Key(r.Date)
		if booked[key] == nil {
			booked[key] = make(map[string]struct{})
		}
		booked[key][r.UserID] = struct{}{}
	}

	week := WeekCapacity{WeekOffset: weekOffset, WeekStart: monday, WeekEnd: sunday}
	var utilizationSum int
	for _, date := range calendar.WorkingDays(monday, sunday) {
		dow := DayOf(date)
		capacity, ok := capacities[dow]
		if !ok {
			capacity = defaultCapacity
		}
		day := ComputeDay(date, capacity, len(booked[calendar.Key(date)]))

		week.Days = append(week.Days, day)
		week.TotalCapacity += day.Capacity
		week.TotalAvailable += day.Available
		week.TotalBookings += day.Booked
		if day.IsOverbooked {
			week.OverbookedDays++
		}
		utilizationSum += day.UtilizationPercent
	}
	if len(week.Days) > 0 {
		avg := float64(utilizationSum) / float64(len(week.Days))
		week.AverageUtilization = math.Round(avg*10) / 10
	}
	return week
}

// ComputeDay applies the booking rules to one day. Utilization is not
// clamped: values above 100 signal overbooking.
func ComputeDay(date time.Time, capacity, booked int) DayCapacity {
	day := DayCapacity{
		Date:         calendar.Day(date),
		DayOfWeek:    DayOf(date),
		Capacity:     capacity,
		Booked:       booked,
		Available:    max(capacity-booked, 0),
		IsOverbooked: booked > capacity,
	}
	if capacity > 0 {
		day.UtilizationPercent = int(math.Round(float64(booked) / float64(capacity) * 100))
	}
	return day
}
