package analytics

import (
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

// ResolveScope turns a selector into the users an aggregation covers.
// Precedence is UserID, then ChapterLeadID, then the actor's own scope:
// the tribe lead sees the organization, everyone else their chapter team.
// Actors other than the tribe lead may only select inside their own team.
func ResolveScope(actor user.User, sel Selector, users []user.User) (Scope, error) {
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	own := ownScope(actor, users)

	switch {
	case sel.UserID != nil:
		target, ok := byID[*sel.UserID]
		if !ok {
			return Scope{}, ErrScopeUserNotFound
		}
		if actor.Role != user.RoleTribeLead && !own.has(target.ID) {
			return Scope{}, ErrScopeOutsideTeam
		}
		return Scope{Kind: ScopeUser, ID: target.ID, UserIDs: []string{target.ID}}, nil

	case sel.ChapterLeadID != nil:
		lead, ok := byID[*sel.ChapterLeadID]
		if !ok {
			return Scope{}, ErrScopeLeadNotFound
		}
		if lead.Role != user.RoleChapterLead {
			return Scope{}, ErrNotChapterLead
		}
		if actor.Role != user.RoleTribeLead && !(own.Kind == ScopeTeam && own.ID == lead.ID) {
			return Scope{}, ErrScopeOutsideTeam
		}
		return teamScope(lead.ID, users), nil

	default:
		return own, nil
	}
}

func ownScope(actor user.User, users []user.User) Scope {
	switch actor.Role {
	case user.RoleTribeLead:
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		return Scope{Kind: ScopeOrganization, UserIDs: ids}
	case user.RoleChapterLead:
		return teamScope(actor.ID, users)
	case user.RoleReporter:
		if actor.ChapterLeadID == nil {
			return Scope{Kind: ScopeUser, ID: actor.ID, UserIDs: []string{actor.ID}}
		}
		return teamScope(*actor.ChapterLeadID, users)
	default:
		return Scope{Kind: ScopeUser, ID: actor.ID, UserIDs: []string{actor.ID}}
	}
}

// teamScope is the chapter lead followed by its reporters.
func teamScope(leadID string, users []user.User) Scope {
	ids := []string{leadID}
	for _, u := range users {
		if u.ReportsTo(leadID) {
			ids = append(ids, u.ID)
		}
	}
	return Scope{Kind: ScopeTeam, ID: leadID, UserIDs: ids}
}
