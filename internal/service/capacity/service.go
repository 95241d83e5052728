package capacity

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	DefaultCapacity int           // capacity of weekdays without a setting
	CacheTTL        time.Duration // default: 5 minutes
}

type CapacityServiceImpl struct {
	capacity.SettingRepository
	attendanceRepo attendance.AttendanceRepository
	cache          cache.Cache
	hub            *sse.Hub
	config         Config
}

func NewCapacityService(
	settingRepository capacity.SettingRepository,
	attendanceRepository attendance.AttendanceRepository,
	c cache.Cache,
	hub *sse.Hub,
	cfg Config,
) capacity.CapacityService {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &CapacityServiceImpl{
		SettingRepository: settingRepository,
		attendanceRepo:    attendanceRepository,
		cache:             c,
		hub:               hub,
		config:            cfg,
	}
}

// GetWeek implements capacity.CapacityService.
func (s *CapacityServiceImpl) GetWeek(ctx context.Context, session user.Session, weekOffset int) (capacity.WeekCapacityResponse, error) {
	today := calendar.Today(session.Now)
	monday, sunday := calendar.WeekOf(today, weekOffset)
	key, err := cache.Versioned(ctx, s.cache, cache.PrefixCapacity, "week", calendar.Key(monday), strconv.Itoa(weekOffset))
	if err != nil {
		slog.Warn("Failed to read capacity cache generation", "error", err)
	}

	var cached capacity.WeekCapacityResponse
	if key != "" {
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			slog.Warn("Failed to read capacity cache", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	var (
		settings []capacity.Setting
		records  []attendance.Record
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		settings, err = s.SettingRepository.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list capacity settings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		office := attendance.StatusOffice
		var err error
		records, err = s.attendanceRepo.List(gCtx, attendance.RecordFilter{
			StartDate: &monday,
			EndDate:   &sunday,
			Status:    &office,
		})
		if err != nil {
			return fmt.Errorf("failed to list office attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return capacity.WeekCapacityResponse{}, err
	}

	week := capacity.ComputeWeek(today, weekOffset, records, settings, s.config.DefaultCapacity)
	resp := capacity.NewWeekCapacityResponse(week, settings)

	if key != "" {
		if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
			slog.Warn("Failed to store capacity cache", "key", key, "error", err)
		}
	}
	return resp, nil
}

// ListSettings implements capacity.CapacityService.
func (s *CapacityServiceImpl) ListSettings(ctx context.Context) ([]capacity.SettingResponse, error) {
	settings, err := s.SettingRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list capacity settings: %w", err)
	}
	out := make([]capacity.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		out = append(out, capacity.NewSettingResponse(setting))
	}
	return out, nil
}

// UpdateSetting implements capacity.CapacityService.
func (s *CapacityServiceImpl) UpdateSetting(ctx context.Context, session user.Session, req capacity.UpdateSettingRequest) (capacity.SettingResponse, error) {
	if !session.Can(user.PermissionCapacityManage) {
		return capacity.SettingResponse{}, capacity.ErrCapacityManageDenied
	}
	if err := req.Validate(); err != nil {
		return capacity.SettingResponse{}, err
	}

	saved, err := s.SettingRepository.Upsert(ctx, req.Setting())
	if err != nil {
		return capacity.SettingResponse{}, fmt.Errorf("failed to save capacity setting: %w", err)
	}

	if err := s.cache.Invalidate(ctx, cache.PrefixCapacity); err != nil {
		slog.Warn("Failed to invalidate cache", "prefix", cache.PrefixCapacity, "error", err)
	}

	slog.Info("Capacity setting updated",
		"day_of_week", saved.DayOfWeek,
		"capacity", saved.Capacity,
		"updated_by", session.User.ID,
	)

	resp := capacity.NewSettingResponse(saved)
	s.hub.Broadcast(sse.NewEvent(sse.EventCapacityUpdated, resp))
	return resp, nil
}
