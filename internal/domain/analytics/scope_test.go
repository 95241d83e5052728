package analytics

import (
	"testing"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func scopeUsers() (tribe, lead, otherLead, reporter, otherReporter user.User, all []user.User) {
	tribe = user.User{ID: "tl", Name: "Tina", Role: user.RoleTribeLead}
	lead = user.User{ID: "cl-1", Name: "Cora", Role: user.RoleChapterLead}
	otherLead = user.User{ID: "cl-2", Name: "Carl", Role: user.RoleChapterLead}
	reporter = user.User{ID: "r-1", Name: "Rita", Role: user.RoleReporter, ChapterLeadID: strPtr("cl-1")}
	otherReporter = user.User{ID: "r-2", Name: "Rob", Role: user.RoleReporter, ChapterLeadID: strPtr("cl-2")}
	all = []user.User{tribe, lead, otherLead, reporter, otherReporter}
	return
}

func TestResolveScope_OwnScope(t *testing.T) {
	tribe, lead, _, reporter, _, all := scopeUsers()

	s, err := ResolveScope(tribe, Selector{}, all)
	require.NoError(t, err)
	assert.Equal(t, ScopeOrganization, s.Kind)
	assert.Len(t, s.UserIDs, 5)

	s, err = ResolveScope(lead, Selector{}, all)
	require.NoError(t, err)
	assert.Equal(t, Scope{Kind: ScopeTeam, ID: "cl-1", UserIDs: []string{"cl-1", "r-1"}}, s)

	s, err = ResolveScope(reporter, Selector{}, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"cl-1", "r-1"}, s.UserIDs)
}

func TestResolveScope_Precedence(t *testing.T) {
	tribe, _, _, _, _, all := scopeUsers()

	s, err := ResolveScope(tribe, Selector{UserID: strPtr("r-2"), ChapterLeadID: strPtr("cl-1")}, all)
	require.NoError(t, err)
	assert.Equal(t, Scope{Kind: ScopeUser, ID: "r-2", UserIDs: []string{"r-2"}}, s)

	s, err = ResolveScope(tribe, Selector{ChapterLeadID: strPtr("cl-2")}, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"cl-2", "r-2"}, s.UserIDs)
}

func TestResolveScope_ChapterLeadLimitedToOwnTeam(t *testing.T) {
	_, lead, _, _, _, all := scopeUsers()

	_, err := ResolveScope(lead, Selector{UserID: strPtr("r-2")}, all)
	assert.ErrorIs(t, err, ErrScopeOutsideTeam)
	assert.True(t, apperror.IsPermission(err))

	_, err = ResolveScope(lead, Selector{ChapterLeadID: strPtr("cl-2")}, all)
	assert.ErrorIs(t, err, ErrScopeOutsideTeam)

	s, err := ResolveScope(lead, Selector{UserID: strPtr("r-1")}, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"r-1"}, s.UserIDs)
}

func TestResolveScope_Errors(t *testing.T) {
	tribe, _, _, _, _, all := scopeUsers()

	_, err := ResolveScope(tribe, Selector{UserID: strPtr("ghost")}, all)
	assert.True(t, apperror.IsNotFound(err))

	_, err = ResolveScope(tribe, Selector{ChapterLeadID: strPtr("ghost")}, all)
	assert.ErrorIs(t, err, ErrScopeLeadNotFound)

	_, err = ResolveScope(tribe, Selector{ChapterLeadID: strPtr("r-1")}, all)
	assert.ErrorIs(t, err, ErrNotChapterLead)
	assert.True(t, apperror.IsValidation(err))
}

func TestAnalyticsQuery_Range(t *testing.T) {
	today := mustDay(t, "2025-03-31")

	rng, err := AnalyticsQuery{}.Range(today)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", rng.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-31", rng.End.Format("2006-01-02"))

	q := AnalyticsQuery{StartDate: strPtr("2025-03-10"), EndDate: strPtr("2025-03-01")}
	assert.ErrorIs(t, q.Validate(), ErrInvalidRange)

	q = AnalyticsQuery{StartDate: strPtr("2025-04-10")}
	require.NoError(t, q.Validate())
	_, err = q.Range(today)
	assert.ErrorIs(t, err, ErrInvalidRange)

	q = AnalyticsQuery{StartDate: strPtr("2025-01-01"), EndDate: strPtr("2026-01-01")}
	rng, err = q.Range(today)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", rng.End.Format("2006-01-02"))

	for _, q := range []AnalyticsQuery{
		{StartDate: strPtr("2025-01-01"), EndDate: strPtr("2026-01-02")},
		{StartDate: strPtr("0001-01-01"), EndDate: strPtr("9999-12-31")},
		{StartDate: strPtr("1999-01-01")},
	} {
		_, err := q.Range(today)
		assert.ErrorIs(t, err, ErrRangeTooLong)
		assert.True(t, apperror.IsValidation(err))
	}
}
