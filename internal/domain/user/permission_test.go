package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func testUsers() (tribe, lead, otherLead, reporter, otherReporter User) {
	tribe = User{ID: "tl", Name: "Tara", Role: RoleTribeLead}
	lead = User{ID: "cl-1", Name: "Cora", Role: RoleChapterLead}
	otherLead = User{ID: "cl-2", Name: "Carl", Role: RoleChapterLead}
	reporter = User{ID: "r-1", Name: "Rita", Role: RoleReporter, ChapterLeadID: strPtr("cl-1")}
	otherReporter = User{ID: "r-2", Name: "Rob", Role: RoleReporter, ChapterLeadID: strPtr("cl-2")}
	return
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}

	got, ok := ParseRole(" chapter_lead ")
	assert.True(t, ok)
	assert.Equal(t, RoleChapterLead, got)

	for _, bad := range []string{"admin", "user", ""} {
		_, ok := ParseRole(bad)
		assert.False(t, ok, bad)
	}

	assert.Less(t, RoleReporter.Rank(), RoleChapterLead.Rank())
	assert.Less(t, RoleChapterLead.Rank(), RoleTribeLead.Rank())
}

func TestRolePredicates(t *testing.T) {
	tribe, lead, _, reporter, _ := testUsers()

	cases := []struct {
		name     string
		u        User
		admin    bool
		analytic bool
		allocate bool
		manage   bool
	}{
		{"tribe lead", tribe, true, true, true, true},
		{"chapter lead", lead, false, true, true, false},
		{"reporter", reporter, false, false, false, false},
		{"unknown role", User{ID: "x", Role: Role("admin")}, false, false, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.admin, CanAccessAdmin(c.u, false))
			assert.Equal(t, c.analytic, CanViewAnalytics(c.u))
			assert.Equal(t, c.allocate, CanAllocateAttendance(c.u))
			assert.Equal(t, c.manage, CanManageUsers(c.u))
			assert.Equal(t, c.manage, CanDeleteUser(c.u))
		})
	}
}

func TestCanAccessAdmin_Delegated(t *testing.T) {
	_, lead, _, _, _ := testUsers()
	assert.True(t, CanAccessAdmin(lead, true))
	assert.False(t, CanAccessAdmin(User{Role: Role("bogus")}, true))
}

func TestCanEditUser(t *testing.T) {
	tribe, lead, _, reporter, _ := testUsers()

	assert.True(t, CanEditUser(reporter, reporter.ID))
	assert.False(t, CanEditUser(reporter, lead.ID))
	assert.False(t, CanEditUser(lead, reporter.ID))
	assert.True(t, CanEditUser(tribe, reporter.ID))
}

func TestIsReportOf(t *testing.T) {
	tribe, lead, otherLead, reporter, otherReporter := testUsers()

	assert.True(t, IsReportOf(tribe, lead))
	assert.True(t, IsReportOf(tribe, otherReporter))
	assert.False(t, IsReportOf(tribe, tribe))

	assert.True(t, IsReportOf(lead, reporter))
	assert.False(t, IsReportOf(lead, otherReporter))
	assert.False(t, IsReportOf(lead, otherLead))
	assert.False(t, IsReportOf(lead, lead))

	assert.False(t, IsReportOf(reporter, otherReporter))
}

func TestPermissionSet(t *testing.T) {
	set := PermissionsFor(RoleChapterLead)
	assert.True(t, set.Has(PermissionAttendanceAllocate))
	assert.False(t, set.Has(PermissionAdminAccess))

	set.Add(DelegatedPermissions...)
	assert.True(t, set.Has(PermissionAdminAccess))
	assert.False(t, set.Has(PermissionUserDelete))
	assert.False(t, set.Has(PermissionDelegationManage))
	assert.Contains(t, set.List(), string(PermissionCapacityManage))

	assert.True(t, HasPermission(RoleTribeLead, PermissionDelegationManage))
	assert.False(t, HasPermission(Role("nope"), PermissionTeamViewOwn))
}
