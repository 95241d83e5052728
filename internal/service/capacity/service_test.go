package capacity

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)

var (
	tribeLead = user.User{ID: "01900000-0000-7000-8000-000000000001", Role: user.RoleTribeLead}
	lead      = user.User{ID: "01900000-0000-7000-8000-000000000002", Role: user.RoleChapterLead}
)

type fixture struct {
	svc      capacity.CapacityService
	settings *memory.Settings
	records  *memory.Attendance
	cache    *cache.Memory
	hub      *sse.Hub
}

func setup(t *testing.T, records ...attendance.Record) fixture {
	t.Helper()
	settings := memory.NewSettings(capacity.Setting{DayOfWeek: capacity.Monday, Capacity: 12})
	store := memory.NewAttendance(records...)
	c := cache.NewMemory()
	hub := sse.NewHub()
	return fixture{
		svc:      NewCapacityService(settings, store, c, hub, Config{DefaultCapacity: 20}),
		settings: settings,
		records:  store,
		cache:    c,
		hub:      hub,
	}
}

func officeOn(t *testing.T, date string, n int) []attendance.Record {
	t.Helper()
	d, err := calendar.Parse(date)
	require.NoError(t, err)
	out := make([]attendance.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, attendance.Record{
			UserID: fmt.Sprintf("01900000-0000-7000-8000-%012d", 100+i),
			Date:   d,
			Status: attendance.StatusOffice,
		})
	}
	return out
}

func TestGetWeek(t *testing.T) {
	ctx := context.Background()
	records := officeOn(t, "2025-03-03", 10)
	records = append(records, officeOn(t, "2025-03-04", 2)...)
	records = append(records, attendance.Record{UserID: "01900000-0000-7000-8000-000000000099", Date: records[0].Date, Status: attendance.StatusRemote})
	f := setup(t, records...)

	resp, err := f.svc.GetWeek(ctx, user.NewSession(lead, now), 0)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", resp.WeekStart)
	assert.Equal(t, "2025-03-09", resp.WeekEnd)
	require.Len(t, resp.WeekData, 5)

	monday := resp.WeekData[0]
	assert.Equal(t, capacity.Monday, monday.Day)
	assert.Equal(t, 12, monday.Capacity)
	assert.Equal(t, 10, monday.Booked)
	assert.Equal(t, 83, monday.UtilizationPercent)
	assert.False(t, monday.IsOverbooked)

	tuesday := resp.WeekData[1]
	assert.Equal(t, 20, tuesday.Capacity)
	assert.Equal(t, 2, tuesday.Booked)

	assert.Equal(t, 92, resp.Summary.TotalCapacity)
	assert.Equal(t, 12, resp.Summary.TotalBookings)
	assert.Len(t, resp.CapacitySettings, 1)
}

func TestGetWeek_CachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	f := setup(t, officeOn(t, "2025-03-03", 3)...)
	s := user.NewSession(lead, now)

	_, err := f.svc.GetWeek(ctx, s, 0)
	require.NoError(t, err)
	_, err = f.svc.GetWeek(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.records.ListCalls())

	_, err = f.svc.UpdateSetting(ctx, user.NewSession(tribeLead, now), capacity.UpdateSettingRequest{DayOfWeek: "monday", Capacity: intPtr(2)})
	require.NoError(t, err)

	resp, err := f.svc.GetWeek(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, f.records.ListCalls())
	assert.True(t, resp.WeekData[0].IsOverbooked)
	assert.Equal(t, 150, resp.WeekData[0].UtilizationPercent)
	assert.Equal(t, 0, resp.WeekData[0].Available)
}

func TestGetWeek_Offset(t *testing.T) {
	f := setup(t)
	resp, err := f.svc.GetWeek(context.Background(), user.NewSession(lead, now), -1)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-24", resp.WeekStart)
	assert.Equal(t, -1, resp.WeekOffset)
}

func intPtr(v int) *int { return &v }

func TestUpdateSetting(t *testing.T) {
	ctx := context.Background()

	t.Run("requires capacity.manage", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.UpdateSetting(ctx, user.NewSession(lead, now), capacity.UpdateSettingRequest{DayOfWeek: "monday", Capacity: intPtr(5)})
		assert.ErrorIs(t, err, capacity.ErrCapacityManageDenied)
	})

	t.Run("delegated chapter lead", func(t *testing.T) {
		f := setup(t)
		s := user.NewSession(lead, now)
		s.Permissions.Add(user.DelegatedPermissions...)
		resp, err := f.svc.UpdateSetting(ctx, s, capacity.UpdateSettingRequest{DayOfWeek: "Friday", Capacity: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, capacity.Friday, resp.DayOfWeek)
	})

	t.Run("validation", func(t *testing.T) {
		f := setup(t)
		s := user.NewSession(tribeLead, now)
		_, err := f.svc.UpdateSetting(ctx, s, capacity.UpdateSettingRequest{DayOfWeek: "funday", Capacity: intPtr(5)})
		assert.True(t, apperror.IsValidation(err))
		_, err = f.svc.UpdateSetting(ctx, s, capacity.UpdateSettingRequest{DayOfWeek: "monday", Capacity: intPtr(-1)})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("updates in place and notifies", func(t *testing.T) {
		f := setup(t)
		events, cancel := f.hub.Subscribe(lead.ID)
		defer cancel()

		resp, err := f.svc.UpdateSetting(ctx, user.NewSession(tribeLead, now), capacity.UpdateSettingRequest{DayOfWeek: "monday", Capacity: intPtr(30)})
		require.NoError(t, err)
		assert.Equal(t, 30, resp.Capacity)

		list, err := f.svc.ListSettings(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, resp.ID, list[0].ID)

		select {
		case ev := <-events:
			assert.Equal(t, sse.EventCapacityUpdated, ev.Event)
		case <-time.After(time.Second):
			t.Fatal("no capacity event")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := setup(t)
		boom := errors.New("boom")
		f.settings.FailWrites(boom)
		_, err := f.svc.UpdateSetting(ctx, user.NewSession(tribeLead, now), capacity.UpdateSettingRequest{DayOfWeek: "monday", Capacity: intPtr(30)})
		assert.ErrorIs(t, err, boom)
	})
}
