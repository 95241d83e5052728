package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	userRepo user.UserRepository
	cache    cache.Cache
	hub      *sse.Hub
}

func NewAttendanceService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	c cache.Cache,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		userRepo:             userRepository,
		cache:                c,
		hub:                  hub,
	}
}

// SetOwn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SetOwn(ctx context.Context, session user.Session, req attendance.SetAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.upsert(ctx, session, req.Record(session.User.ID))
}

// Allocate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Allocate(ctx context.Context, session user.Session, req attendance.AllocateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if !user.CanAllocateAttendance(session.User) {
		return attendance.AttendanceResponse{}, attendance.ErrAllocateNotAllowed
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	target, err := s.userRepo.GetByID(ctx, req.UserID)
	if errors.Is(err, user.ErrUserNotFound) {
		return attendance.AttendanceResponse{}, attendance.ErrTargetNotFound
	}
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get target user: %w", err)
	}
	if target.ID == session.User.ID {
		return attendance.AttendanceResponse{}, attendance.ErrCannotAllocateSelf
	}
	if !user.IsReportOf(session.User, target) {
		return attendance.AttendanceResponse{}, attendance.ErrTargetNotReport
	}

	return s.upsert(ctx, session, req.Record())
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, session user.Session, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	records, err := s.AttendanceRepository.List(ctx, filter.RecordFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

func (s *AttendanceServiceImpl) upsert(ctx context.Context, session user.Session, record attendance.Record) (attendance.AttendanceResponse, error) {
	saved, err := s.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	// Invalidation errors are logged only; stale entries still expire by TTL.
	for _, prefix := range []string{cache.PrefixAnalytics, cache.PrefixCapacity} {
		if err := s.cache.Invalidate(ctx, prefix); err != nil {
			slog.Warn("Failed to invalidate cache", "prefix", prefix, "error", err)
		}
	}

	slog.Info("Attendance saved",
		"user_id", saved.UserID,
		"date", calendar.Key(saved.Date),
		"status", saved.Status,
		"changed_by", session.User.ID,
	)

	s.hub.Broadcast(sse.NewEvent(sse.EventAttendanceUpdated, attendance.ChangeEvent{
		UserID:    saved.UserID,
		Date:      calendar.Key(saved.Date),
		Status:    saved.Status,
		ChangedBy: session.User.ID,
	}))
	return attendance.NewAttendanceResponse(saved), nil
}
