package analytics

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/analytics"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	CacheTTL time.Duration // default: 5 minutes
}

type AnalyticsServiceImpl struct {
	attendance.AttendanceRepository
	userRepo user.UserRepository
	cache    cache.Cache
	config   Config
}

func NewAnalyticsService(
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	c cache.Cache,
	cfg Config,
) analytics.AnalyticsService {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &AnalyticsServiceImpl{
		AttendanceRepository: attendanceRepository,
		userRepo:             userRepository,
		cache:                c,
		config:               cfg,
	}
}

// Compute implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Compute(ctx context.Context, session user.Session, q analytics.AnalyticsQuery) (analytics.AnalyticsResponse, error) {
	if !user.CanViewAnalytics(session.User) {
		return analytics.AnalyticsResponse{}, analytics.ErrAnalyticsAccessDenied
	}
	if err := q.Validate(); err != nil {
		return analytics.AnalyticsResponse{}, err
	}
	rng, err := q.Range(calendar.Today(session.Now))
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	users, err := s.userRepo.List(ctx, user.UserFilter{})
	if err != nil {
		return analytics.AnalyticsResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	scope, err := analytics.ResolveScope(session.User, q.Selector(), users)
	if err != nil {
		return analytics.AnalyticsResponse{}, err
	}

	key, err := scopeKey(ctx, s.cache, scope, rng)
	if err != nil {
		slog.Warn("Failed to read analytics cache generation", "error", err)
	}
	var cached analytics.AnalyticsResponse
	if key != "" {
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			slog.Warn("Failed to read analytics cache", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	records, err := s.AttendanceRepository.List(ctx, attendance.RecordFilter{
		UserIDs:   scope.UserIDs,
		StartDate: &rng.Start,
		EndDate:   &rng.End,
	})
	if err != nil {
		return analytics.AnalyticsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	resp := analytics.NewAnalyticsResponse(analytics.Compute(records, scope, rng))
	if key != "" {
		if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
			slog.Warn("Failed to store analytics cache", "key", key, "error", err)
		}
	}
	return resp, nil
}

// Personal implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) Personal(ctx context.Context, session user.Session, q analytics.PersonalStatsQuery) (analytics.PersonalStatsResponse, error) {
	if err := q.Validate(); err != nil {
		return analytics.PersonalStatsResponse{}, err
	}

	targetID := session.User.ID
	if q.UserID != nil {
		targetID = *q.UserID
	}
	today := calendar.Today(session.Now)
	month := q.MonthStart(today)
	_, monthEnd := calendar.MonthBounds(month.Year(), month.Month())

	// The streak may look back past the month start.
	from := calendar.AddDays(today, -calendar.MaxLookback)
	if month.Before(from) {
		from = month
	}
	to := today
	if monthEnd.After(to) {
		to = monthEnd
	}

	var (
		target  user.User
		records []attendance.Record
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if targetID == session.User.ID {
			target = session.User
			return nil
		}
		var err error
		target, err = s.userRepo.GetByID(gCtx, targetID)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.List(gCtx, attendance.RecordFilter{
			UserID:    &targetID,
			StartDate: &from,
			EndDate:   &to,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return analytics.PersonalStatsResponse{}, analytics.ErrScopeUserNotFound
		}
		return analytics.PersonalStatsResponse{}, err
	}
	if target.ID != session.User.ID && !user.IsReportOf(session.User, target) {
		return analytics.PersonalStatsResponse{}, analytics.ErrPersonalStatsDenied
	}

	stats := analytics.ComputePersonalStats(target.ID, records, month, today)
	return analytics.NewPersonalStatsResponse(stats), nil
}

// scopeKey identifies a scope by its member set so that hierarchy changes
// never serve another team's numbers.
func scopeKey(ctx context.Context, c cache.Cache, scope analytics.Scope, rng analytics.Range) (string, error) {
	ids := append([]string(nil), scope.UserIDs...)
	sort.Strings(ids)
	h := fnv.New64a()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return cache.Versioned(ctx, c, cache.PrefixAnalytics,
		string(scope.Kind),
		scope.ID,
		calendar.Key(rng.Start),
		calendar.Key(rng.End),
		strconv.FormatUint(h.Sum64(), 16),
	)
}
