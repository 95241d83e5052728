package analytics

import (
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// ========================================
// QUERY DTOs
// ========================================

type AnalyticsQuery struct {
	StartDate     *string `json:"startDate,omitempty"`
	EndDate       *string `json:"endDate,omitempty"`
	UserID        *string `json:"userId,omitempty"`
	ChapterLeadID *string `json:"chapterLeadId,omitempty"`
}

func (q *AnalyticsQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.StartDate != nil {
		if _, ok := validator.IsValidDate(*q.StartDate); !ok {
			errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
		}
	}
	if q.EndDate != nil {
		if _, ok := validator.IsValidDate(*q.EndDate); !ok {
			errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
		}
	}
	if q.UserID != nil && !validator.IsValidUUID(*q.UserID) {
		errs.Add("userId", "invalid userId format")
	}
	if q.ChapterLeadID != nil && !validator.IsValidUUID(*q.ChapterLeadID) {
		errs.Add("chapterLeadId", "invalid chapterLeadId format")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	if q.StartDate != nil && q.EndDate != nil && *q.StartDate > *q.EndDate {
		return ErrInvalidRange
	}
	return nil
}

// Range resolves the query dates against today. A missing end is today, a
// missing start is DefaultRangeDays-1 days before the end. Ranges longer
// than MaxRangeDays are rejected.
func (q AnalyticsQuery) Range(today time.Time) (Range, error) {
	rng := DefaultRange(today)
	if q.EndDate != nil {
		end, err := calendar.Parse(*q.EndDate)
		if err != nil {
			return Range{}, err
		}
		rng.End = end
		rng.Start = calendar.AddDays(end, -(DefaultRangeDays - 1))
	}
	if q.StartDate != nil {
		start, err := calendar.Parse(*q.StartDate)
		if err != nil {
			return Range{}, err
		}
		rng.Start = start
	}
	if rng.Start.After(rng.End) {
		return Range{}, ErrInvalidRange
	}
	if rng.End.After(calendar.AddDays(rng.Start, MaxRangeDays-1)) {
		return Range{}, ErrRangeTooLong
	}
	return rng, nil
}

func (q AnalyticsQuery) Selector() Selector {
	return Selector{UserID: q.UserID, ChapterLeadID: q.ChapterLeadID}
}

type PersonalStatsQuery struct {
	UserID *string `json:"userId,omitempty"`
	Month  *string `json:"month,omitempty"`

	month time.Time
}

func (q *PersonalStatsQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.UserID != nil && !validator.IsValidUUID(*q.UserID) {
		errs.Add("userId", "invalid userId format")
	}
	if q.Month != nil {
		month, ok := validator.IsValidMonth(*q.Month)
		if !ok {
			errs.Add("month", "month must be in YYYY-MM format")
		}
		q.month = month
	}
	return errs.Err()
}

// MonthStart returns the first day of the requested month, defaulting to
// the month of today.
func (q PersonalStatsQuery) MonthStart(today time.Time) time.Time {
	if q.Month == nil {
		first, _ := calendar.MonthBounds(today.Year(), today.Month())
		return first
	}
	return q.month
}

// ========================================
// RESPONSE DTOs
// ========================================

type OverviewResponse struct {
	TotalUsers       int    `json:"totalUsers"`
	AverageOccupancy int    `json:"averageOccupancy"`
	MostPopularDay   string `json:"mostPopularDay"`
	RemoteWorkRate   int    `json:"remoteWorkRate"`
}

type OccupancyResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type WeeklyPatternResponse struct {
	Day   string  `json:"day"`
	Count float64 `json:"count"`
}

type StatusDistributionResponse struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type ScopeResponse struct {
	Type      ScopeKind `json:"type"`
	ID        *string   `json:"id,omitempty"`
	UserCount int       `json:"userCount"`
}

type AnalyticsResponse struct {
	StartDate          string                       `json:"startDate"`
	EndDate            string                       `json:"endDate"`
	Scope              ScopeResponse                `json:"scope"`
	Overview           OverviewResponse             `json:"overview"`
	OccupancyData      []OccupancyResponse          `json:"occupancyData"`
	WeeklyPattern      []WeeklyPatternResponse      `json:"weeklyPattern"`
	StatusDistribution []StatusDistributionResponse `json:"statusDistribution"`
}

func NewAnalyticsResponse(r Result) AnalyticsResponse {
	resp := AnalyticsResponse{
		StartDate: calendar.Key(r.Range.Start),
		EndDate:   calendar.Key(r.Range.End),
		Scope: ScopeResponse{
			Type:      r.Scope.Kind,
			UserCount: len(r.Scope.UserIDs),
		},
		Overview: OverviewResponse{
			TotalUsers:       r.Overview.TotalUsers,
			AverageOccupancy: r.Overview.AverageOccupancy,
			MostPopularDay:   r.Overview.MostPopularDay,
			RemoteWorkRate:   r.Overview.RemoteWorkRate,
		},
		OccupancyData:      make([]OccupancyResponse, 0, len(r.OccupancyData)),
		WeeklyPattern:      make([]WeeklyPatternResponse, 0, len(r.WeeklyPattern)),
		StatusDistribution: make([]StatusDistributionResponse, 0, len(r.StatusDistribution)),
	}
	if r.Scope.ID != "" {
		id := r.Scope.ID
		resp.Scope.ID = &id
	}
	for _, p := range r.OccupancyData {
		resp.OccupancyData = append(resp.OccupancyData, OccupancyResponse{Date: calendar.Key(p.Date), Count: p.Count})
	}
	for _, w := range r.WeeklyPattern {
		resp.WeeklyPattern = append(resp.WeeklyPattern, WeeklyPatternResponse{Day: w.Day.String(), Count: w.Average})
	}
	for _, s := range r.StatusDistribution {
		resp.StatusDistribution = append(resp.StatusDistribution, StatusDistributionResponse{
			Status:     string(s.Status),
			Count:      s.Count,
			Percentage: s.Percentage,
		})
	}
	return resp
}

type PersonalStatsResponse struct {
	UserID         string `json:"userId"`
	Month          string `json:"month"`
	OfficeDays     int    `json:"officeDays"`
	CurrentStreak  int    `json:"currentStreak"`
	AttendanceRate int    `json:"attendanceRate"`
}

func NewPersonalStatsResponse(p PersonalStats) PersonalStatsResponse {
	return PersonalStatsResponse{
		UserID:         p.UserID,
		Month:          p.Month.Format("2006-01"),
		OfficeDays:     p.OfficeDays,
		CurrentStreak:  p.CurrentStreak,
		AttendanceRate: p.AttendanceRate,
	}
}
