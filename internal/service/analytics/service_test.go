package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/analytics"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tribeLeadID = "01900000-0000-7000-8000-000000000001"
	leadAID     = "01900000-0000-7000-8000-000000000002"
	leadBID     = "01900000-0000-7000-8000-000000000003"
	reporterAID = "01900000-0000-7000-8000-000000000004"
	reporterBID = "01900000-0000-7000-8000-000000000005"
)

// Friday
var now = time.Date(2025, 3, 7, 17, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

type fixture struct {
	svc     analytics.AnalyticsService
	users   *memory.Users
	records *memory.Attendance
	cache   *cache.Memory
}

func rec(t *testing.T, userID, date string, status attendance.Status) attendance.Record {
	t.Helper()
	d, err := calendar.Parse(date)
	require.NoError(t, err)
	return attendance.Record{UserID: userID, Date: d, Status: status}
}

func setup(t *testing.T, records ...attendance.Record) fixture {
	t.Helper()
	users := memory.NewUsers(
		user.User{ID: tribeLeadID, Name: "Tara", Role: user.RoleTribeLead},
		user.User{ID: leadAID, Name: "Alice", Role: user.RoleChapterLead},
		user.User{ID: leadBID, Name: "Bob", Role: user.RoleChapterLead},
		user.User{ID: reporterAID, Name: "Rita", Role: user.RoleReporter, ChapterLeadID: ptr(leadAID)},
		user.User{ID: reporterBID, Name: "Ravi", Role: user.RoleReporter, ChapterLeadID: ptr(leadBID)},
	)
	store := memory.NewAttendance(records...)
	c := cache.NewMemory()
	return fixture{
		svc:     NewAnalyticsService(store, users, c, Config{}),
		users:   users,
		records: store,
		cache:   c,
	}
}

func (f fixture) session(t *testing.T, id string) user.Session {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return user.NewSession(u, now)
}

func TestCompute_Access(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.Compute(ctx, f.session(t, reporterAID), analytics.AnalyticsQuery{})
	assert.ErrorIs(t, err, analytics.ErrAnalyticsAccessDenied)

	_, err = f.svc.Compute(ctx, f.session(t, leadAID), analytics.AnalyticsQuery{UserID: ptr(reporterBID)})
	assert.ErrorIs(t, err, analytics.ErrScopeOutsideTeam)

	_, err = f.svc.Compute(ctx, f.session(t, leadAID), analytics.AnalyticsQuery{ChapterLeadID: ptr(leadBID)})
	assert.ErrorIs(t, err, analytics.ErrScopeOutsideTeam)

	_, err = f.svc.Compute(ctx, f.session(t, tribeLeadID), analytics.AnalyticsQuery{ChapterLeadID: ptr(reporterAID)})
	assert.ErrorIs(t, err, analytics.ErrNotChapterLead)

	_, err = f.svc.Compute(ctx, f.session(t, tribeLeadID), analytics.AnalyticsQuery{UserID: ptr("01900000-0000-7000-8000-0000000000ff")})
	assert.ErrorIs(t, err, analytics.ErrScopeUserNotFound)

	_, err = f.svc.Compute(ctx, f.session(t, tribeLeadID), analytics.AnalyticsQuery{StartDate: ptr("2025-03-07"), EndDate: ptr("2025-03-01")})
	assert.ErrorIs(t, err, analytics.ErrInvalidRange)
}

func TestCompute_Scopes(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		rec(t, reporterAID, "2025-03-03", attendance.StatusOffice),
		rec(t, leadAID, "2025-03-03", attendance.StatusOffice),
		rec(t, reporterBID, "2025-03-03", attendance.StatusRemote),
		rec(t, reporterBID, "2025-03-04", attendance.StatusOffice),
	)
	q := analytics.AnalyticsQuery{StartDate: ptr("2025-03-03"), EndDate: ptr("2025-03-07")}

	org, err := f.svc.Compute(ctx, f.session(t, tribeLeadID), q)
	require.NoError(t, err)
	assert.Equal(t, analytics.ScopeOrganization, org.Scope.Type)
	assert.Equal(t, 5, org.Overview.TotalUsers)
	require.Len(t, org.OccupancyData, 5)
	assert.Equal(t, 2, org.OccupancyData[0].Count)
	assert.Equal(t, 1, org.OccupancyData[1].Count)
	assert.Equal(t, "Monday", org.Overview.MostPopularDay)
	assert.Equal(t, 25, org.Overview.RemoteWorkRate)

	team, err := f.svc.Compute(ctx, f.session(t, leadAID), q)
	require.NoError(t, err)
	assert.Equal(t, analytics.ScopeTeam, team.Scope.Type)
	assert.Equal(t, 2, team.Overview.TotalUsers)
	assert.Equal(t, 0, team.Overview.RemoteWorkRate)
	assert.Equal(t, 0, team.OccupancyData[1].Count)

	single, err := f.svc.Compute(ctx, f.session(t, tribeLeadID), analytics.AnalyticsQuery{
		StartDate: q.StartDate, EndDate: q.EndDate, UserID: ptr(reporterBID), ChapterLeadID: ptr(leadAID),
	})
	require.NoError(t, err)
	assert.Equal(t, analytics.ScopeUser, single.Scope.Type)
	assert.Equal(t, "Tuesday", single.Overview.MostPopularDay)
}

func TestCompute_DefaultRange(t *testing.T) {
	f := setup(t)
	resp, err := f.svc.Compute(context.Background(), f.session(t, tribeLeadID), analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-06", resp.StartDate)
	assert.Equal(t, "2025-03-07", resp.EndDate)
	assert.Len(t, resp.OccupancyData, 30)
	assert.Equal(t, "", resp.Overview.MostPopularDay)
}

func TestCompute_CachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	f := setup(t, rec(t, reporterAID, "2025-03-03", attendance.StatusOffice))
	s := f.session(t, leadAID)

	_, err := f.svc.Compute(ctx, s, analytics.AnalyticsQuery{})
	require.NoError(t, err)
	_, err = f.svc.Compute(ctx, s, analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.records.ListCalls())

	// A second team has a different key.
	_, err = f.svc.Compute(ctx, f.session(t, leadBID), analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.records.ListCalls())

	require.NoError(t, f.cache.Invalidate(ctx, cache.PrefixAnalytics))
	_, err = f.svc.Compute(ctx, s, analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, f.records.ListCalls())
}

func TestPersonal(t *testing.T) {
	ctx := context.Background()
	f := setup(t,
		rec(t, reporterAID, "2025-02-27", attendance.StatusOffice),
		rec(t, reporterAID, "2025-02-28", attendance.StatusRemote),
		rec(t, reporterAID, "2025-03-03", attendance.StatusOffice),
		rec(t, reporterAID, "2025-03-05", attendance.StatusOffice),
		rec(t, reporterAID, "2025-03-06", attendance.StatusRemote),
		rec(t, reporterAID, "2025-03-07", attendance.StatusOffice),
	)

	t.Run("self, current month", func(t *testing.T) {
		stats, err := f.svc.Personal(ctx, f.session(t, reporterAID), analytics.PersonalStatsQuery{})
		require.NoError(t, err)
		assert.Equal(t, "2025-03", stats.Month)
		assert.Equal(t, 3, stats.OfficeDays)
		assert.Equal(t, 3, stats.CurrentStreak)
		assert.Equal(t, 80, stats.AttendanceRate)
	})

	t.Run("lead for own reporter, past month", func(t *testing.T) {
		stats, err := f.svc.Personal(ctx, f.session(t, leadAID), analytics.PersonalStatsQuery{UserID: ptr(reporterAID), Month: ptr("2025-02")})
		require.NoError(t, err)
		assert.Equal(t, reporterAID, stats.UserID)
		assert.Equal(t, 1, stats.OfficeDays)
		assert.Equal(t, 2, stats.CurrentStreak)
	})

	t.Run("lead outside team", func(t *testing.T) {
		_, err := f.svc.Personal(ctx, f.session(t, leadBID), analytics.PersonalStatsQuery{UserID: ptr(reporterAID)})
		assert.ErrorIs(t, err, analytics.ErrPersonalStatsDenied)
	})

	t.Run("reporter for peer", func(t *testing.T) {
		_, err := f.svc.Personal(ctx, f.session(t, reporterBID), analytics.PersonalStatsQuery{UserID: ptr(reporterAID)})
		assert.ErrorIs(t, err, analytics.ErrPersonalStatsDenied)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.Personal(ctx, f.session(t, tribeLeadID), analytics.PersonalStatsQuery{UserID: ptr("01900000-0000-7000-8000-0000000000ff")})
		assert.ErrorIs(t, err, analytics.ErrScopeUserNotFound)
	})
}

// writeBeforeSet runs a write between compute and cache store, as a
// concurrent attendance update would.
type writeBeforeSet struct {
	*cache.Memory
	write func(ctx context.Context)
}

func (c *writeBeforeSet) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.write != nil {
		c.write(ctx)
		c.write = nil
	}
	return c.Memory.Set(ctx, key, value, ttl)
}

func occupancyOn(resp analytics.AnalyticsResponse, date string) int {
	for _, p := range resp.OccupancyData {
		if p.Date == date {
			return p.Count
		}
	}
	return -1
}

func TestCompute_WriteDuringComputeIsNotCached(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	c := &writeBeforeSet{Memory: cache.NewMemory()}
	c.write = func(ctx context.Context) {
		_, err := f.records.Upsert(ctx, rec(t, reporterAID, "2025-03-06", attendance.StatusOffice))
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx, cache.PrefixAnalytics))
	}
	svc := NewAnalyticsService(f.records, f.users, c, Config{})
	s := f.session(t, leadAID)

	stale, err := svc.Compute(ctx, s, analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, occupancyOn(stale, "2025-03-06"))

	fresh, err := svc.Compute(ctx, s, analytics.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, occupancyOn(fresh, "2025-03-06"))
	assert.Equal(t, 2, f.records.ListCalls())
}
