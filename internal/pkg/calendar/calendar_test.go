package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := Parse(s)
	require.NoError(t, err)
	return d
}

func TestDay_KeepsLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2025, 3, 3, 23, 30, 0, 0, loc)

	assert.Equal(t, "2025-03-03", Key(late))
	assert.Equal(t, time.UTC, Day(late).Location())
	assert.Equal(t, Key(late), Key(Day(late)))
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{"", "2025-13-01", "03/03/2025", "2025-02-30"}
	for _, s := range invalid {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-03-03", "2025-03-03"}, // Monday
		{"2025-03-05", "2025-03-03"},
		{"2025-03-09", "2025-03-03"}, // Sunday belongs to the preceding Monday
		{"2025-03-10", "2025-03-10"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Key(WeekStart(mustDay(t, c.in))), c.in)
	}
}

func TestWeekOf_Offsets(t *testing.T) {
	today := mustDay(t, "2025-03-05") // Wednesday

	mon, sun := WeekOf(today, 0)
	assert.Equal(t, "2025-03-03", Key(mon))
	assert.Equal(t, "2025-03-09", Key(sun))

	mon, sun = WeekOf(today, -1)
	assert.Equal(t, "2025-02-24", Key(mon))
	assert.Equal(t, "2025-03-02", Key(sun))

	mon, _ = WeekOf(today, 2)
	assert.Equal(t, "2025-03-17", Key(mon))
}

func TestWorkingDays(t *testing.T) {
	days := WorkingDays(mustDay(t, "2025-03-06"), mustDay(t, "2025-03-11"))
	var keys []string
	for _, d := range days {
		keys = append(keys, Key(d))
	}
	assert.Equal(t, []string{"2025-03-06", "2025-03-07", "2025-03-10", "2025-03-11"}, keys)

	assert.Nil(t, Between(mustDay(t, "2025-03-11"), mustDay(t, "2025-03-10")))
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, "2024-02-01", Key(first))
	assert.Equal(t, "2024-02-29", Key(last))
}

func TestInRange(t *testing.T) {
	from, to := mustDay(t, "2025-01-01"), mustDay(t, "2025-01-07")
	assert.True(t, InRange(from, from, to))
	assert.True(t, InRange(to.Add(20*time.Hour), from, to))
	assert.False(t, InRange(mustDay(t, "2025-01-08"), from, to))
}
