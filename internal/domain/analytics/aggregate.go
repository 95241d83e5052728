package analytics

import (
	"math"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

// Compute aggregates the records of scope users that fall inside rng.
// Records outside the scope or range are ignored, so callers may pass a
// wider snapshot.
func Compute(records []attendance.Record, scope Scope, rng Range) Result {
	inScope := make(map[string]struct{}, len(scope.UserIDs))
	for _, id := range scope.UserIDs {
		inScope[id] = struct{}{}
	}

	officeByDay := make(map[string]int)
	statusCounts := make(map[attendance.Status]int)
	var total int
	for _, r := range records {
		if _, ok := inScope[r.UserID]; !ok || !rng.Contains(r.Date) {
			continue
		}
		total++
		statusCounts[r.Status]++
		if r.Status == attendance.StatusOffice {
			officeByDay[calendar.Key(r.Date)]++
		}
	}

	days := calendar.Between(rng.Start, rng.End)
	res := Result{
		Range:         rng,
		Scope:         scope,
		OccupancyData: make([]OccupancyPoint, 0, len(days)),
	}
	for _, d := range days {
		res.OccupancyData = append(res.OccupancyData, OccupancyPoint{Date: d, Count: officeByDay[calendar.Key(d)]})
	}

	averages := weekdayAverages(days, officeByDay)
	for _, wd := range calendar.Workdays {
		res.WeeklyPattern = append(res.WeeklyPattern, WeekdayAverage{Day: wd, Average: round1(averages[wd])})
	}

	for _, s := range attendance.Statuses {
		res.StatusDistribution = append(res.StatusDistribution, StatusShare{
			Status:     s,
			Count:      statusCounts[s],
			Percentage: percent(statusCounts[s], total),
		})
	}

	res.Overview = Overview{
		TotalUsers:       len(scope.UserIDs),
		AverageOccupancy: averageOccupancy(days, officeByDay, len(scope.UserIDs)),
		MostPopularDay:   mostPopularDay(averages),
		RemoteWorkRate:   percent(statusCounts[attendance.StatusRemote], total),
	}
	return res
}

// weekdayAverages is the mean office count per occurrence of each working
// weekday in days.
func weekdayAverages(days []time.Time, officeByDay map[string]int) map[time.Weekday]float64 {
	sums := make(map[time.Weekday]int)
	occurrences := make(map[time.Weekday]int)
	for _, d := range days {
		if !calendar.IsWorkingDay(d) {
			continue
		}
		occurrences[d.Weekday()]++
		sums[d.Weekday()] += officeByDay[calendar.Key(d)]
	}

	averages := make(map[time.Weekday]float64, len(calendar.Workdays))
	for _, wd := range calendar.Workdays {
		if occurrences[wd] > 0 {
			averages[wd] = float64(sums[wd]) / float64(occurrences[wd])
		}
	}
	return averages
}

// mostPopularDay picks the highest raw average; ties go to the earliest
// weekday. It is empty when no weekday has any office record.
func mostPopularDay(averages map[time.Weekday]float64) string {
	var best time.Weekday
	var bestAvg float64
	for _, wd := range calendar.Workdays {
		if averages[wd] > bestAvg {
			best, bestAvg = wd, averages[wd]
		}
	}
	if bestAvg == 0 {
		return ""
	}
	return best.String()
}

func averageOccupancy(days []time.Time, officeByDay map[string]int, totalUsers int) int {
	if totalUsers == 0 {
		return 0
	}
	var sum float64
	var n int
	for _, d := range days {
		if !calendar.IsWorkingDay(d) {
			continue
		}
		sum += float64(officeByDay[calendar.Key(d)]) / float64(totalUsers) * 100
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// ComputePersonalStats summarises userID's records for the month starting
// at month. For the current month "today" is today; for past months it is
// the last day of the month. The streak may reach into the previous month.
func ComputePersonalStats(userID string, records []attendance.Record, month, today time.Time) PersonalStats {
	first, last := calendar.MonthBounds(month.Year(), month.Month())
	stats := PersonalStats{UserID: userID, Month: first}

	asOf := calendar.Day(today)
	if asOf.After(last) {
		asOf = last
	}
	if asOf.Before(first) {
		return stats
	}

	byDay := make(map[string]attendance.Status)
	for _, r := range records {
		if r.UserID == userID {
			byDay[calendar.Key(r.Date)] = r.Status
		}
	}

	var recorded int
	workingDays := calendar.WorkingDays(first, asOf)
	for _, d := range workingDays {
		status, ok := byDay[calendar.Key(d)]
		if !ok {
			continue
		}
		recorded++
		if status == attendance.StatusOffice {
			stats.OfficeDays++
		}
	}

	stats.CurrentStreak = currentStreak(byDay, asOf)
	stats.AttendanceRate = min(max(percent(recorded, len(workingDays)), 0), 100)
	return stats
}

// currentStreak counts consecutive recorded working days walking back from
// asOf, looking at most calendar.MaxLookback calendar days.
func currentStreak(byDay map[string]attendance.Status, asOf time.Time) int {
	var streak int
	for i := 0; i < calendar.MaxLookback; i++ {
		d := calendar.AddDays(asOf, -i)
		if !calendar.IsWorkingDay(d) {
			continue
		}
		if _, ok := byDay[calendar.Key(d)]; !ok {
			break
		}
		streak++
	}
	return streak
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
