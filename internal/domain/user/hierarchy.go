package user

import "sort"

// ChapterTeam is a chapter lead with the reporters that reference it.
type ChapterTeam struct {
	Lead      User
	Reporters []User
}

// Hierarchy is the derived organization tree. It is rebuilt from the user
// list on demand and never persisted.
type Hierarchy struct {
	TribeLead    *User
	ChapterLeads []ChapterTeam
	Unassigned   []User
}

// BuildHierarchy groups reporters by chapter lead. Reporters whose chapter
// lead is missing from users end up in Unassigned.
func BuildHierarchy(users []User) Hierarchy {
	var h Hierarchy
	teams := make(map[string]*ChapterTeam)
	var leadOrder []string

	for i := range users {
		u := users[i]
		switch u.Role {
		case RoleTribeLead:
			h.TribeLead = &u
		case RoleChapterLead:
			teams[u.ID] = &ChapterTeam{Lead: u}
			leadOrder = append(leadOrder, u.ID)
		}
	}

	for _, u := range users {
		if u.Role != RoleReporter {
			continue
		}
		if u.ChapterLeadID != nil {
			if team, ok := teams[*u.ChapterLeadID]; ok {
				team.Reporters = append(team.Reporters, u)
				continue
			}
		}
		h.Unassigned = append(h.Unassigned, u)
	}

	for _, id := range leadOrder {
		team := teams[id]
		sortByName(team.Reporters)
		h.ChapterLeads = append(h.ChapterLeads, *team)
	}
	sort.SliceStable(h.ChapterLeads, func(i, j int) bool {
		return h.ChapterLeads[i].Lead.Name < h.ChapterLeads[j].Lead.Name
	})
	sortByName(h.Unassigned)

	return h
}

// TeamOf returns the chapter team with the given lead.
func (h Hierarchy) TeamOf(chapterLeadID string) (ChapterTeam, bool) {
	for _, t := range h.ChapterLeads {
		if t.Lead.ID == chapterLeadID {
			return t, true
		}
	}
	return ChapterTeam{}, false
}

// Members returns the lead followed by its reporters.
func (t ChapterTeam) Members() []User {
	members := make([]User, 0, len(t.Reporters)+1)
	members = append(members, t.Lead)
	return append(members, t.Reporters...)
}

// DirectReports returns the users directly below id: reporters for a
// chapter lead, chapter leads for the tribe lead.
func DirectReports(users []User, id string) []User {
	var lead *User
	for i := range users {
		if users[i].ID == id {
			lead = &users[i]
			break
		}
	}
	if lead == nil {
		return nil
	}

	var reports []User
	for _, u := range users {
		switch lead.Role {
		case RoleTribeLead:
			if u.Role == RoleChapterLead {
				reports = append(reports, u)
			}
		case RoleChapterLead:
			if u.ReportsTo(lead.ID) {
				reports = append(reports, u)
			}
		case RoleReporter:
		}
	}
	sortByName(reports)
	return reports
}

func sortByName(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Name < users[j].Name
	})
}
