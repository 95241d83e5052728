package analytics

import (
	"context"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type AnalyticsService interface {
	// Compute aggregates attendance for the resolved scope and range
	Compute(ctx context.Context, s user.Session, q AnalyticsQuery) (AnalyticsResponse, error)

	// Personal returns month statistics for the caller or one of their reports
	Personal(ctx context.Context, s user.Session, q PersonalStatsQuery) (PersonalStatsResponse, error)
}
