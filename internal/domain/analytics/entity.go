package analytics

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

const (
	// DefaultRangeDays is the length of the range used when none is given.
	DefaultRangeDays = 30

	// MaxRangeDays bounds a requested range. Occupancy holds one point per day.
	MaxRangeDays = 366
)

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// DefaultRange is the last DefaultRangeDays days ending today.
func DefaultRange(today time.Time) Range {
	end := calendar.Day(today)
	return Range{Start: calendar.AddDays(end, -(DefaultRangeDays - 1)), End: end}
}

func (r Range) Contains(t time.Time) bool {
	return calendar.InRange(t, r.Start, r.End)
}

type ScopeKind string

const (
	ScopeOrganization ScopeKind = "organization"
	ScopeTeam         ScopeKind = "team"
	ScopeUser         ScopeKind = "user"
)

// Scope is the resolved set of users an aggregation runs over.
type Scope struct {
	Kind ScopeKind
	// ID is the selected user or chapter lead; empty for the organization.
	ID      string
	UserIDs []string
}

func (s Scope) has(userID string) bool {
	for _, id := range s.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Selector is the caller supplied scope filter. UserID wins over
// ChapterLeadID, both win over the caller's own role scope.
type Selector struct {
	UserID        *string
	ChapterLeadID *string
}

type OccupancyPoint struct {
	Date  time.Time
	Count int
}

type WeekdayAverage struct {
	Day     time.Weekday
	Average float64
}

type StatusShare struct {
	Status     attendance.Status
	Count      int
	Percentage int
}

type Overview struct {
	TotalUsers       int
	AverageOccupancy int
	MostPopularDay   string
	RemoteWorkRate   int
}

// Result is the full aggregation of one scope over one range.
type Result struct {
	Range              Range
	Scope              Scope
	Overview           Overview
	OccupancyData      []OccupancyPoint
	WeeklyPattern      []WeekdayAverage
	StatusDistribution []StatusShare
}

// PersonalStats summarises one user's month.
type PersonalStats struct {
	UserID         string
	Month          time.Time
	OfficeDays     int
	CurrentStreak  int
	AttendanceRate int
}
