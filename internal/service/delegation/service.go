package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/validator"
)

type DelegationServiceImpl struct {
	delegation.DelegationRepository
	userRepo user.UserRepository
	hub      *sse.Hub
	now      func() time.Time
}

func NewDelegationService(repo delegation.DelegationRepository, userRepo user.UserRepository, hub *sse.Hub) delegation.DelegationService {
	return &DelegationServiceImpl{
		DelegationRepository: repo,
		userRepo:             userRepo,
		hub:                  hub,
		now:                  time.Now,
	}
}

// Create implements delegation.DelegationService.
func (s *DelegationServiceImpl) Create(ctx context.Context, session user.Session, req delegation.CreateDelegationRequest) (delegation.DelegationResponse, error) {
	if !session.Can(user.PermissionDelegationManage) {
		return delegation.DelegationResponse{}, delegation.ErrTribeLeadOnly
	}
	if err := req.Validate(); err != nil {
		return delegation.DelegationResponse{}, err
	}
	if req.DelegateID == session.User.ID {
		return delegation.DelegationResponse{}, delegation.ErrSelfDelegation
	}

	delegate, err := s.userRepo.GetByID(ctx, req.DelegateID)
	if errors.Is(err, user.ErrUserNotFound) {
		return delegation.DelegationResponse{}, delegation.ErrDelegateNotFound
	}
	if err != nil {
		return delegation.DelegationResponse{}, fmt.Errorf("failed to get delegate: %w", err)
	}
	if !delegate.IsChapterLead() {
		return delegation.DelegationResponse{}, delegation.ErrDelegateNotLead
	}

	start, end := req.Period()
	created, err := s.DelegationRepository.Create(ctx, delegation.Delegation{
		DelegatorID: session.User.ID,
		DelegateID:  delegate.ID,
		StartDate:   start,
		EndDate:     end,
		IsActive:    true,
	})
	if err != nil {
		return delegation.DelegationResponse{}, fmt.Errorf("failed to create delegation: %w", err)
	}

	slog.Info("Delegation created",
		"delegation_id", created.ID,
		"delegator_id", created.DelegatorID,
		"delegate_id", created.DelegateID,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
	)

	resp := delegation.NewDelegationResponse(created, session.Now)
	s.hub.PublishToMany([]string{created.DelegatorID, created.DelegateID}, sse.NewEvent(sse.EventDelegationCreated, resp))
	return resp, nil
}

// Revoke implements delegation.DelegationService.
func (s *DelegationServiceImpl) Revoke(ctx context.Context, session user.Session, id string) (delegation.DelegationResponse, error) {
	if !session.Can(user.PermissionDelegationManage) {
		return delegation.DelegationResponse{}, delegation.ErrTribeLeadOnly
	}
	if !validator.IsValidUUID(id) {
		return delegation.DelegationResponse{}, delegation.ErrInvalidID
	}

	existing, err := s.DelegationRepository.GetByID(ctx, id)
	if err != nil {
		return delegation.DelegationResponse{}, err
	}
	if !existing.IsActive {
		return delegation.NewDelegationResponse(existing, session.Now), nil
	}

	revoked, err := s.DelegationRepository.Deactivate(ctx, id)
	if err != nil {
		return delegation.DelegationResponse{}, fmt.Errorf("failed to revoke delegation: %w", err)
	}

	slog.Info("Delegation revoked", "delegation_id", revoked.ID, "delegate_id", revoked.DelegateID)

	resp := delegation.NewDelegationResponse(revoked, session.Now)
	s.hub.PublishToMany([]string{revoked.DelegatorID, revoked.DelegateID}, sse.NewEvent(sse.EventDelegationRevoked, resp))
	return resp, nil
}

// List implements delegation.DelegationService.
func (s *DelegationServiceImpl) List(ctx context.Context, session user.Session) ([]delegation.DelegationResponse, error) {
	var (
		list []delegation.Delegation
		err  error
	)
	if session.Can(user.PermissionDelegationManage) {
		list, err = s.DelegationRepository.List(ctx)
	} else {
		list, err = s.DelegationRepository.ListByDelegate(ctx, session.User.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list delegations: %w", err)
	}

	out := make([]delegation.DelegationResponse, 0, len(list))
	for _, d := range list {
		out = append(out, delegation.NewDelegationResponse(d, session.Now))
	}
	return out, nil
}

// Active implements delegation.DelegationService.
func (s *DelegationServiceImpl) Active(ctx context.Context, session user.Session) (delegation.ActiveDelegationResponse, error) {
	list, err := s.DelegationRepository.ListByDelegate(ctx, session.User.ID)
	if err != nil {
		return delegation.ActiveDelegationResponse{}, fmt.Errorf("failed to list delegations: %w", err)
	}
	d, ok := delegation.ActiveFor(session.User.ID, list, session.Now)
	if !ok {
		return delegation.ActiveDelegationResponse{}, nil
	}
	resp := delegation.NewDelegationResponse(d, session.Now)
	return delegation.ActiveDelegationResponse{HasActiveDelegation: true, Delegation: &resp}, nil
}

// ExpireStale implements delegation.DelegationService.
func (s *DelegationServiceImpl) ExpireStale(ctx context.Context) error {
	n, err := s.DelegationRepository.DeactivateExpired(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to expire delegations: %w", err)
	}
	if n > 0 {
		slog.Info("Expired delegations", "count", n)
	}
	return nil
}
