// Package calendar holds the date arithmetic shared by attendance, capacity
// and analytics. Every date handled by the core is a calendar day: midnight
// UTC carrying the year/month/day of the original value. Map keys use the
// canonical "2006-01-02" form produced by Key.
package calendar

import (
	"fmt"
	"time"
)

const KeyLayout = "2006-01-02"

// MaxLookback bounds backward walks such as streak computation.
const MaxLookback = 30

// Day strips the time of day from t. The calendar date is taken in t's own
// location, so 2025-03-03T23:30-05:00 stays on March 3rd.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Key returns the canonical yyyy-mm-dd form of t's calendar date.
func Key(t time.Time) string {
	return Day(t).Format(KeyLayout)
}

// Parse reads a yyyy-mm-dd string into a calendar day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Today returns the calendar day of now.
func Today(now time.Time) time.Time {
	return Day(now)
}

// AddDays moves a calendar day by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// WeekOf returns the Monday and Sunday bounding the week that is offset
// weeks away from the week containing today.
func WeekOf(today time.Time, offset int) (monday, sunday time.Time) {
	monday = WeekStart(today).AddDate(0, 0, 7*offset)
	return monday, monday.AddDate(0, 0, 6)
}

// IsWorkingDay reports whether t falls on Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Between returns every calendar day in [from, to]. It returns nil when
// from is after to.
func Between(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if from.After(to) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays returns the Monday-Friday days in [from, to].
func WorkingDays(from, to time.Time) []time.Time {
	var days []time.Time
	for _, d := range Between(from, to) {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// InRange reports whether day lies within [from, to], comparing calendar days.
func InRange(day, from, to time.Time) bool {
	d := Day(day)
	return !d.Before(Day(from)) && !d.After(Day(to))
}

// Workdays lists Monday through Friday in order.
var Workdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
