package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHierarchy(t *testing.T) {
	tribe, lead, otherLead, reporter, otherReporter := testUsers()
	orphan := User{ID: "r-3", Name: "Olga", Role: RoleReporter, ChapterLeadID: strPtr("gone")}
	second := User{ID: "r-4", Name: "Abe", Role: RoleReporter, ChapterLeadID: strPtr("cl-1")}

	h := BuildHierarchy([]User{reporter, orphan, tribe, lead, otherReporter, otherLead, second})

	require.NotNil(t, h.TribeLead)
	assert.Equal(t, "tl", h.TribeLead.ID)

	require.Len(t, h.ChapterLeads, 2)
	assert.Equal(t, "Carl", h.ChapterLeads[0].Lead.Name)
	assert.Equal(t, "Cora", h.ChapterLeads[1].Lead.Name)

	team, ok := h.TeamOf("cl-1")
	require.True(t, ok)
	require.Len(t, team.Reporters, 2)
	assert.Equal(t, "Abe", team.Reporters[0].Name)
	assert.Equal(t, "Rita", team.Reporters[1].Name)
	assert.Equal(t, "cl-1", team.Members()[0].ID)

	require.Len(t, h.Unassigned, 1)
	assert.Equal(t, "r-3", h.Unassigned[0].ID)

	_, ok = h.TeamOf("missing")
	assert.False(t, ok)
}

func TestBuildHierarchy_IsPureProjection(t *testing.T) {
	tribe, lead, _, reporter, _ := testUsers()
	users := []User{reporter, lead, tribe}

	first := BuildHierarchy(users)
	second := BuildHierarchy(users)
	assert.Equal(t, first, second)
	assert.Equal(t, "r-1", users[0].ID, "input order must not change")
}

func TestDirectReports(t *testing.T) {
	tribe, lead, otherLead, reporter, otherReporter := testUsers()
	users := []User{tribe, lead, otherLead, reporter, otherReporter}

	got := DirectReports(users, "cl-1")
	require.Len(t, got, 1)
	assert.Equal(t, "r-1", got[0].ID)

	got = DirectReports(users, "tl")
	require.Len(t, got, 2)
	assert.Equal(t, "Carl", got[0].Name)

	assert.Empty(t, DirectReports(users, "r-1"))
	assert.Nil(t, DirectReports(users, "unknown"))
}
