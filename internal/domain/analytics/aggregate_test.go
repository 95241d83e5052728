package analytics

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.Parse(s)
	require.NoError(t, err)
	return d
}

func record(t *testing.T, userID, date string, status attendance.Status) attendance.Record {
	return attendance.Record{UserID: userID, Date: mustDay(t, date), Status: status}
}

func TestCompute_MostPopularDayTieBreak(t *testing.T) {
	scope := Scope{Kind: ScopeOrganization, UserIDs: []string{"a", "b"}}
	rng := Range{Start: mustDay(t, "2025-03-03"), End: mustDay(t, "2025-03-07")}
	records := []attendance.Record{
		record(t, "a", "2025-03-03", attendance.StatusOffice),
		record(t, "b", "2025-03-03", attendance.StatusOffice),
		record(t, "a", "2025-03-05", attendance.StatusOffice),
		record(t, "b", "2025-03-05", attendance.StatusOffice),
		record(t, "a", "2025-03-04", attendance.StatusRemote),
	}

	res := Compute(records, scope, rng)
	assert.Equal(t, "Monday", res.Overview.MostPopularDay)
}

func TestCompute_Aggregates(t *testing.T) {
	scope := Scope{Kind: ScopeTeam, ID: "lead", UserIDs: []string{"lead", "a"}}
	rng := Range{Start: mustDay(t, "2025-03-03"), End: mustDay(t, "2025-03-16")}
	records := []attendance.Record{
		record(t, "lead", "2025-03-03", attendance.StatusOffice),
		record(t, "lead", "2025-03-10", attendance.StatusOffice),
		record(t, "a", "2025-03-10", attendance.StatusOffice),
		record(t, "a", "2025-03-04", attendance.StatusRemote),
		record(t, "a", "2025-03-05", attendance.StatusAbsent),
		record(t, "outsider", "2025-03-03", attendance.StatusOffice),
		record(t, "a", "2025-03-15", attendance.StatusOffice), // Saturday
		record(t, "a", "2025-03-17", attendance.StatusOffice), // out of range
	}

	res := Compute(records, scope, rng)

	require.Len(t, res.OccupancyData, 14, "one point per calendar day")
	assert.Equal(t, 1, res.OccupancyData[0].Count)
	assert.Equal(t, 0, res.OccupancyData[1].Count)
	assert.Equal(t, 2, res.OccupancyData[7].Count)
	assert.Equal(t, 1, res.OccupancyData[12].Count)

	require.Len(t, res.WeeklyPattern, 5)
	assert.Equal(t, time.Monday, res.WeeklyPattern[0].Day)
	assert.Equal(t, 1.5, res.WeeklyPattern[0].Average)
	assert.Equal(t, 0.0, res.WeeklyPattern[1].Average)

	dist := map[attendance.Status]StatusShare{}
	for _, s := range res.StatusDistribution {
		dist[s.Status] = s
	}
	assert.Equal(t, 4, dist[attendance.StatusOffice].Count)
	assert.Equal(t, 67, dist[attendance.StatusOffice].Percentage)
	assert.Equal(t, 17, dist[attendance.StatusRemote].Percentage)
	assert.Equal(t, 17, dist[attendance.StatusAbsent].Percentage)

	assert.Equal(t, 2, res.Overview.TotalUsers)
	// Working-day office counts 1 and 2 over ten working days of two users.
	assert.Equal(t, 15, res.Overview.AverageOccupancy)
	assert.Equal(t, "Monday", res.Overview.MostPopularDay)
	assert.Equal(t, 17, res.Overview.RemoteWorkRate)
}

func TestCompute_Empty(t *testing.T) {
	rng := Range{Start: mustDay(t, "2025-03-03"), End: mustDay(t, "2025-03-04")}
	res := Compute(nil, Scope{Kind: ScopeOrganization}, rng)

	assert.Len(t, res.OccupancyData, 2)
	assert.Equal(t, "", res.Overview.MostPopularDay)
	assert.Equal(t, 0, res.Overview.AverageOccupancy)
	assert.Equal(t, 0, res.Overview.RemoteWorkRate)
	for _, s := range res.StatusDistribution {
		assert.Equal(t, 0, s.Percentage)
	}
}

func TestComputePersonalStats_StreakStopsAtGap(t *testing.T) {
	records := []attendance.Record{
		record(t, "u", "2025-03-12", attendance.StatusOffice),
		record(t, "u", "2025-03-11", attendance.StatusRemote),
		// 2025-03-10 missing
		record(t, "u", "2025-03-07", attendance.StatusOffice),
	}
	stats := ComputePersonalStats("u", records, mustDay(t, "2025-03-01"), mustDay(t, "2025-03-12"))
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestComputePersonalStats_StreakSkipsWeekend(t *testing.T) {
	records := []attendance.Record{
		record(t, "u", "2025-03-10", attendance.StatusOffice),
		record(t, "u", "2025-03-07", attendance.StatusOffice),
		record(t, "u", "2025-03-06", attendance.StatusAbsent),
		record(t, "u", "2025-02-28", attendance.StatusAbsent),
	}
	stats := ComputePersonalStats("u", records, mustDay(t, "2025-03-01"), mustDay(t, "2025-03-10"))
	assert.Equal(t, 3, stats.CurrentStreak)
}

func TestComputePersonalStats_StreakCappedAtLookback(t *testing.T) {
	var records []attendance.Record
	for _, d := range calendar.WorkingDays(mustDay(t, "2025-01-01"), mustDay(t, "2025-03-31")) {
		records = append(records, attendance.Record{UserID: "u", Date: d, Status: attendance.StatusOffice})
	}
	stats := ComputePersonalStats("u", records, mustDay(t, "2025-03-01"), mustDay(t, "2025-03-31"))

	want := len(calendar.WorkingDays(mustDay(t, "2025-03-02"), mustDay(t, "2025-03-31")))
	assert.Equal(t, want, stats.CurrentStreak)
	assert.Equal(t, 100, stats.AttendanceRate)
}

func TestComputePersonalStats_MonthToDate(t *testing.T) {
	records := []attendance.Record{
		record(t, "u", "2025-03-03", attendance.StatusOffice),
		record(t, "u", "2025-03-05", attendance.StatusRemote),
		record(t, "u", "2025-03-08", attendance.StatusOffice), // Saturday
		record(t, "other", "2025-03-04", attendance.StatusOffice),
	}
	stats := ComputePersonalStats("u", records, mustDay(t, "2025-03-01"), mustDay(t, "2025-03-05"))

	assert.Equal(t, 1, stats.OfficeDays)
	assert.Equal(t, 67, stats.AttendanceRate)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, "2025-03-01", calendar.Key(stats.Month))
}

func TestComputePersonalStats_PastAndFutureMonths(t *testing.T) {
	var records []attendance.Record
	for _, d := range calendar.WorkingDays(mustDay(t, "2025-02-01"), mustDay(t, "2025-02-28")) {
		records = append(records, attendance.Record{UserID: "u", Date: d, Status: attendance.StatusOffice})
	}

	past := ComputePersonalStats("u", records, mustDay(t, "2025-02-01"), mustDay(t, "2025-03-12"))
	assert.Equal(t, 20, past.OfficeDays)
	assert.Equal(t, 100, past.AttendanceRate)
	assert.Equal(t, 20, past.CurrentStreak)

	future := ComputePersonalStats("u", records, mustDay(t, "2025-04-01"), mustDay(t, "2025-03-12"))
	assert.Equal(t, PersonalStats{UserID: "u", Month: mustDay(t, "2025-04-01")}, future)
}
