package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DelegationExpirer deactivates delegations whose window has closed.
type DelegationExpirer interface {
	ExpireStale(ctx context.Context) error
}

// RevocationPurger forgets revoked access tokens that have expired.
type RevocationPurger interface {
	PurgeRevoked(now time.Time) int
}

type MaintenanceJobs struct {
	delegations   DelegationExpirer
	revocations   RevocationPurger
	sweepInterval time.Duration
}

func NewMaintenanceJobs(delegations DelegationExpirer, revocations RevocationPurger, sweepInterval time.Duration) *MaintenanceJobs {
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	return &MaintenanceJobs{
		delegations:   delegations,
		revocations:   revocations,
		sweepInterval: sweepInterval,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("expire_delegations", j.sweepInterval, j.ExpireDelegations)
	scheduler.AddJob("purge_revoked_tokens", j.sweepInterval, j.PurgeRevokedTokens)
}

func (j *MaintenanceJobs) ExpireDelegations(ctx context.Context) error {
	if err := j.delegations.ExpireStale(ctx); err != nil {
		return fmt.Errorf("expire delegations: %w", err)
	}
	return nil
}

func (j *MaintenanceJobs) PurgeRevokedTokens(_ context.Context) error {
	if n := j.revocations.PurgeRevoked(time.Now()); n > 0 {
		slog.Info("Cron: purged revoked tokens", "count", n)
	}
	return nil
}
