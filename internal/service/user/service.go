package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/office-attendance-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx postgresql.Transactor
	user.UserRepository
}

func NewUserService(tx postgresql.Transactor, userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
	}
}

// Me implements user.UserService.
func (s *UserServiceImpl) Me(ctx context.Context, session user.Session) (user.MeResponse, error) {
	return user.MeResponse{
		User:        user.NewUserResponse(session.User),
		Permissions: session.Permissions.List(),
		Delegated:   session.Delegated,
	}, nil
}

// CompleteFirstLogin implements user.UserService.
func (s *UserServiceImpl) CompleteFirstLogin(ctx context.Context, session user.Session) (user.UserResponse, error) {
	if err := s.UserRepository.CompleteFirstLogin(ctx, session.User.ID); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to complete first login: %w", err)
	}
	updated, err := s.UserRepository.GetByID(ctx, session.User.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, session user.Session, search string) ([]user.UserResponse, error) {
	var filter user.UserFilter
	if search = strings.TrimSpace(search); search != "" {
		filter.Search = &search
	}
	users, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return user.NewUserResponses(users), nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, session user.Session, id string) (user.UserResponse, error) {
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrInvalidUserID
	}
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, session user.Session, req user.CreateUserRequest) (user.UserResponse, error) {
	if !session.Can(user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrAdminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	role, _ := user.ParseRole(req.Role)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	newUser := user.User{
		Email:         req.Email,
		Name:          strings.TrimSpace(req.Name),
		Role:          role,
		ChapterLeadID: nonEmpty(req.ChapterLeadID),
		TeamName:      nonEmpty(req.TeamName),
		Avatar:        nonEmpty(req.Avatar),
		PasswordHash:  &hashed,
		IsFirstLogin:  true,
	}

	var created user.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, newUser.Email, ""); err != nil {
			return err
		}
		if err := s.checkHierarchy(ctx, newUser, nil); err != nil {
			return err
		}
		created, err = s.UserRepository.Create(ctx, newUser)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(created), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, session user.Session, req user.UpdateUserRequest) (user.UserResponse, error) {
	if !validator.IsValidUUID(req.ID) {
		return user.UserResponse{}, user.ErrInvalidUserID
	}
	canManage := session.Can(user.PermissionUserManage)
	if !user.CanEditUser(session.User, req.ID) && !canManage {
		return user.UserResponse{}, user.ErrCannotEditUser
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.ChangesHierarchy() && !canManage {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	var updated user.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.UserRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		next := applyUpdate(existing, req)

		if next.Email != existing.Email {
			if err := s.ensureEmailFree(ctx, next.Email, existing.ID); err != nil {
				return err
			}
		}
		if err := s.checkHierarchy(ctx, next, &existing); err != nil {
			return err
		}
		updated, err = s.UserRepository.Update(ctx, next)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, session user.Session, id string) error {
	if !user.CanDeleteUser(session.User) {
		return user.ErrTribeLeadAccessRequired
	}
	if !validator.IsValidUUID(id) {
		return user.ErrInvalidUserID
	}
	if session.User.ID == id {
		return user.ErrCannotDeleteSelf
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		target, err := s.UserRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch target.Role {
		case user.RoleTribeLead:
			return user.ErrTribeLeadRequired
		case user.RoleChapterLead:
			n, err := s.UserRepository.CountReporters(ctx, target.ID)
			if err != nil {
				return fmt.Errorf("failed to count reporters: %w", err)
			}
			if n > 0 {
				return user.ErrChapterLeadHasReports
			}
		case user.RoleReporter:
		}
		return s.UserRepository.Delete(ctx, id)
	})
}

// DirectReports implements user.UserService.
func (s *UserServiceImpl) DirectReports(ctx context.Context, session user.Session, id string) ([]user.UserResponse, error) {
	if !validator.IsValidUUID(id) {
		return nil, user.ErrInvalidUserID
	}
	if session.User.ID != id && !session.Can(user.PermissionTeamViewHierarchy) {
		return nil, user.ErrNotInYourTeam
	}
	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.UserRepository.List(ctx, user.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return user.NewUserResponses(user.DirectReports(users, id)), nil
}

// MyTeam implements user.UserService.
func (s *UserServiceImpl) MyTeam(ctx context.Context, session user.Session) (user.MyTeamResponse, error) {
	users, err := s.UserRepository.List(ctx, user.UserFilter{})
	if err != nil {
		return user.MyTeamResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	h := user.BuildHierarchy(users)
	me := session.User
	resp := user.MyTeamResponse{Role: string(me.Role)}

	switch me.Role {
	case user.RoleTribeLead:
		hr := user.NewHierarchyResponse(h)
		resp.Hierarchy = &hr
		resp.Members = user.NewUserResponses(users)
	case user.RoleChapterLead:
		team, ok := h.TeamOf(me.ID)
		if !ok {
			team = user.ChapterTeam{Lead: me}
		}
		lead := user.NewUserResponse(team.Lead)
		resp.ChapterLead = &lead
		resp.Members = user.NewUserResponses(team.Reporters)
	case user.RoleReporter:
		resp.Members = []user.UserResponse{}
		if me.ChapterLeadID == nil {
			break
		}
		if team, ok := h.TeamOf(*me.ChapterLeadID); ok {
			lead := user.NewUserResponse(team.Lead)
			resp.ChapterLead = &lead
			resp.Members = user.NewUserResponses(team.Reporters)
		}
	}
	return resp, nil
}

// Hierarchy implements user.UserService.
func (s *UserServiceImpl) Hierarchy(ctx context.Context, session user.Session) (user.HierarchyResponse, error) {
	if !session.Can(user.PermissionTeamViewHierarchy) {
		return user.HierarchyResponse{}, user.ErrLeadAccessRequired
	}
	users, err := s.UserRepository.List(ctx, user.UserFilter{})
	if err != nil {
		return user.HierarchyResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	return user.NewHierarchyResponse(user.BuildHierarchy(users)), nil
}

func (s *UserServiceImpl) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.UserRepository.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email: %w", err)
	case existing.ID != selfID:
		return user.ErrUserEmailExists
	default:
		return nil
	}
}

// checkHierarchy enforces the role invariants for next. previous is nil on
// create.
func (s *UserServiceImpl) checkHierarchy(ctx context.Context, next user.User, previous *user.User) error {
	switch next.Role {
	case user.RoleReporter:
		if next.ChapterLeadID == nil || *next.ChapterLeadID == next.ID {
			return user.ErrReporterNeedsLead
		}
		lead, err := s.UserRepository.GetByID(ctx, *next.ChapterLeadID)
		if errors.Is(err, user.ErrUserNotFound) || (err == nil && !lead.IsChapterLead()) {
			return user.ErrReporterNeedsLead
		}
		if err != nil {
			return err
		}
	case user.RoleChapterLead, user.RoleTribeLead:
		if next.ChapterLeadID != nil {
			return user.ErrLeadCannotHaveLead
		}
	default:
		return user.ErrInvalidRole
	}

	wasTribeLead := previous != nil && previous.IsTribeLead()
	if next.IsTribeLead() && !wasTribeLead {
		n, err := s.UserRepository.CountByRole(ctx, user.RoleTribeLead)
		if err != nil {
			return fmt.Errorf("failed to count tribe leads: %w", err)
		}
		if n > 0 {
			return user.ErrTribeLeadExists
		}
	}
	if wasTribeLead && !next.IsTribeLead() {
		return user.ErrTribeLeadRequired
	}

	if previous != nil && previous.IsChapterLead() && !next.IsChapterLead() {
		n, err := s.UserRepository.CountReporters(ctx, previous.ID)
		if err != nil {
			return fmt.Errorf("failed to count reporters: %w", err)
		}
		if n > 0 {
			return user.ErrChapterLeadHasReports
		}
	}
	return nil
}

// applyUpdate merges the non-nil fields of req into u. Moving away from the
// reporter role drops the chapter lead unless one is given explicitly.
func applyUpdate(u user.User, req user.UpdateUserRequest) user.User {
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		role, _ := user.ParseRole(*req.Role)
		if role != user.RoleReporter && req.ChapterLeadID == nil {
			u.ChapterLeadID = nil
		}
		u.Role = role
	}
	if req.ChapterLeadID != nil {
		u.ChapterLeadID = nonEmpty(req.ChapterLeadID)
	}
	if req.TeamName != nil {
		u.TeamName = nonEmpty(req.TeamName)
	}
	if req.Avatar != nil {
		u.Avatar = nonEmpty(req.Avatar)
	}
	return u
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
