package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleReporter    Role = "REPORTER"     // Regular employee, reports to a chapter lead
	RoleChapterLead Role = "CHAPTER_LEAD" // Manages a team of reporters
	RoleTribeLead   Role = "TRIBE_LEAD"   // Organization-wide admin, exactly one
)

// Roles lists every role from lowest to highest tier.
var Roles = []Role{RoleReporter, RoleChapterLead, RoleTribeLead}

// ParseRole converts a raw string into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleReporter:
		return RoleReporter, true
	case RoleChapterLead:
		return RoleChapterLead, true
	case RoleTribeLead:
		return RoleTribeLead, true
	default:
		return "", false
	}
}

// Rank orders roles: REPORTER < CHAPTER_LEAD < TRIBE_LEAD.
func (r Role) Rank() int {
	switch r {
	case RoleReporter:
		return 1
	case RoleChapterLead:
		return 2
	case RoleTribeLead:
		return 3
	default:
		return 0
	}
}

// DisplayName returns the human readable role name.
func (r Role) DisplayName() string {
	switch r {
	case RoleReporter:
		return "Reporter"
	case RoleChapterLead:
		return "Chapter Lead"
	case RoleTribeLead:
		return "Tribe Lead"
	default:
		return string(r)
	}
}

type User struct {
	ID            string
	Email         string
	Name          string
	Role          Role
	ChapterLeadID *string
	TeamName      *string
	Avatar        *string
	PasswordHash  *string
	IsFirstLogin  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsReporter checks if user is a reporter
func (u *User) IsReporter() bool {
	return u.Role == RoleReporter
}

// IsChapterLead checks if user is a chapter lead
func (u *User) IsChapterLead() bool {
	return u.Role == RoleChapterLead
}

// IsTribeLead checks if user is the tribe lead
func (u *User) IsTribeLead() bool {
	return u.Role == RoleTribeLead
}

// ReportsTo checks if u is a reporter under the given chapter lead
func (u *User) ReportsTo(chapterLeadID string) bool {
	return u.Role == RoleReporter && u.ChapterLeadID != nil && *u.ChapterLeadID == chapterLeadID
}
