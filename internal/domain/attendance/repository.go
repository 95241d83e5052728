package attendance

import (
	"context"
	"time"
)

// RecordFilter narrows a List call. Nil fields are ignored. UserIDs, when
// non-nil, restricts the result to those users (an empty slice matches
// nothing).
type RecordFilter struct {
	UserID    *string
	UserIDs   []string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *Status
}

type AttendanceRepository interface {
	// List returns records matching filter ordered by date, then user
	List(ctx context.Context, filter RecordFilter) ([]Record, error)

	// Upsert inserts the record or replaces status and notes of the
	// existing (user_id, date) row. The stored row is returned.
	Upsert(ctx context.Context, record Record) (Record, error)
}
