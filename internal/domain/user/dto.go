package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	RoleName      string  `json:"roleName"`
	ChapterLeadID *string `json:"chapterLeadId,omitempty"`
	TeamName      *string `json:"teamName,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	IsFirstLogin  bool    `json:"isFirstLogin"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		RoleName:      u.Role.DisplayName(),
		ChapterLeadID: u.ChapterLeadID,
		TeamName:      u.TeamName,
		Avatar:        u.Avatar,
		IsFirstLogin:  u.IsFirstLogin,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

func NewUserResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// MeResponse is the session user plus its effective permissions.
type MeResponse struct {
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
	Delegated   bool         `json:"delegated"`
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	ChapterLeadID *string `json:"chapterLeadId,omitempty"`
	TeamName      *string `json:"teamName,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if _, ok := ParseRole(r.Role); !ok {
		errs.Add("role", "role must be one of REPORTER, CHAPTER_LEAD, TRIBE_LEAD")
	}

	if r.ChapterLeadID != nil && !validator.IsValidUUID(*r.ChapterLeadID) {
		errs.Add("chapterLeadId", "invalid chapterLeadId format")
	}

	return errs.Err()
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Role          *string `json:"role,omitempty"`
	ChapterLeadID *string `json:"chapterLeadId,omitempty"`
	TeamName      *string `json:"teamName,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
		if !validator.IsValidEmail(email) {
			errs.Add("email", "invalid email format")
		}
	}

	if r.Role != nil {
		if _, ok := ParseRole(*r.Role); !ok {
			errs.Add("role", "role must be one of REPORTER, CHAPTER_LEAD, TRIBE_LEAD")
		}
	}

	if r.ChapterLeadID != nil && *r.ChapterLeadID != "" && !validator.IsValidUUID(*r.ChapterLeadID) {
		errs.Add("chapterLeadId", "invalid chapterLeadId format")
	}

	return errs.Err()
}

// ChangesHierarchy reports whether the update touches role or reporting line.
func (r *UpdateUserRequest) ChangesHierarchy() bool {
	return r.Role != nil || r.ChapterLeadID != nil
}

// ChapterTeamResponse is one chapter lead with its reporters.
type ChapterTeamResponse struct {
	ChapterLead UserResponse   `json:"chapterLead"`
	Reporters   []UserResponse `json:"reporters"`
}

// HierarchyResponse is the full organization tree.
type HierarchyResponse struct {
	TribeLead    *UserResponse         `json:"tribeLead,omitempty"`
	ChapterLeads []ChapterTeamResponse `json:"chapterLeads"`
	Unassigned   []UserResponse        `json:"unassigned"`
}

func NewHierarchyResponse(h Hierarchy) HierarchyResponse {
	resp := HierarchyResponse{
		ChapterLeads: make([]ChapterTeamResponse, 0, len(h.ChapterLeads)),
		Unassigned:   NewUserResponses(h.Unassigned),
	}
	if h.TribeLead != nil {
		tl := NewUserResponse(*h.TribeLead)
		resp.TribeLead = &tl
	}
	for _, t := range h.ChapterLeads {
		resp.ChapterLeads = append(resp.ChapterLeads, ChapterTeamResponse{
			ChapterLead: NewUserResponse(t.Lead),
			Reporters:   NewUserResponses(t.Reporters),
		})
	}
	return resp
}

// MyTeamResponse is the team view of the caller. Tribe leads get the whole
// hierarchy, everyone else gets their chapter.
type MyTeamResponse struct {
	Role        string             `json:"role"`
	ChapterLead *UserResponse      `json:"chapterLead,omitempty"`
	Members     []UserResponse     `json:"members"`
	Hierarchy   *HierarchyResponse `json:"hierarchy,omitempty"`
}
