package user

type Permission string

const (
	// Self service
	PermissionAttendanceSetOwn Permission = "attendance.set_own"
	PermissionTeamViewOwn      Permission = "team.view_own"

	// Lead
	PermissionAttendanceAllocate Permission = "attendance.allocate"
	PermissionAnalyticsView      Permission = "analytics.view"
	PermissionTeamViewHierarchy  Permission = "team.view_hierarchy"

	// Admin
	PermissionAdminAccess      Permission = "admin.access"
	PermissionUserManage       Permission = "user.manage"
	PermissionUserDelete       Permission = "user.delete"
	PermissionCapacityManage   Permission = "capacity.manage"
	PermissionDelegationManage Permission = "delegation.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleTribeLead: {
		PermissionAttendanceSetOwn,
		PermissionTeamViewOwn,
		PermissionAttendanceAllocate,
		PermissionAnalyticsView,
		PermissionTeamViewHierarchy,
		PermissionAdminAccess,
		PermissionUserManage,
		PermissionUserDelete,
		PermissionCapacityManage,
		PermissionDelegationManage,
	},
	RoleChapterLead: {
		PermissionAttendanceSetOwn,
		PermissionTeamViewOwn,
		PermissionAttendanceAllocate,
		PermissionAnalyticsView,
		PermissionTeamViewHierarchy,
	},
	RoleReporter: {
		PermissionAttendanceSetOwn,
		PermissionTeamViewOwn,
	},
}

// DelegatedPermissions is the admin group a chapter lead receives while a
// delegation is active. Deleting users and delegating further stay with the
// tribe lead.
var DelegatedPermissions = []Permission{
	PermissionAdminAccess,
	PermissionUserManage,
	PermissionCapacityManage,
	PermissionTeamViewHierarchy,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// PermissionSet is the effective set of permissions of a session.
type PermissionSet map[Permission]struct{}

// PermissionsFor returns the permissions granted by role alone.
func PermissionsFor(role Role) PermissionSet {
	set := PermissionSet{}
	set.Add(RolePermissions[role]...)
	return set
}

func (s PermissionSet) Add(perms ...Permission) {
	for _, p := range perms {
		s[p] = struct{}{}
	}
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the permissions in catalogue order.
func (s PermissionSet) List() []string {
	var out []string
	for _, p := range RolePermissions[RoleTribeLead] {
		if s.Has(p) {
			out = append(out, string(p))
		}
	}
	return out
}

// CanAccessAdmin: tribe lead, or holder of an active delegation.
func CanAccessAdmin(u User, delegated bool) bool {
	switch u.Role {
	case RoleTribeLead:
		return true
	case RoleChapterLead, RoleReporter:
		return delegated
	default:
		return false
	}
}

// CanViewAnalytics: chapter leads and the tribe lead.
func CanViewAnalytics(u User) bool {
	switch u.Role {
	case RoleChapterLead, RoleTribeLead:
		return true
	case RoleReporter:
		return false
	default:
		return false
	}
}

// CanAllocateAttendance: chapter leads and the tribe lead. Reporters only
// set their own attendance through the personal path.
func CanAllocateAttendance(u User) bool {
	switch u.Role {
	case RoleChapterLead, RoleTribeLead:
		return true
	case RoleReporter:
		return false
	default:
		return false
	}
}

// CanViewTeamHierarchy: chapter leads and the tribe lead.
func CanViewTeamHierarchy(u User) bool {
	return CanViewAnalytics(u)
}

// CanEditUser: users edit themselves, the tribe lead edits anyone.
func CanEditUser(actor User, targetID string) bool {
	return actor.ID == targetID || actor.Role == RoleTribeLead
}

func CanManageUsers(u User) bool {
	return u.Role == RoleTribeLead
}

func CanDeleteUser(u User) bool {
	return u.Role == RoleTribeLead
}

// IsReportOf reports whether target sits below lead in the hierarchy.
// The tribe lead is above everyone else; a chapter lead is above the
// reporters that reference it.
func IsReportOf(lead User, target User) bool {
	if lead.ID == target.ID {
		return false
	}
	switch lead.Role {
	case RoleTribeLead:
		return true
	case RoleChapterLead:
		return target.ReportsTo(lead.ID)
	case RoleReporter:
		return false
	default:
		return false
	}
}
