package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

type Attendance struct {
	failer
	mu      sync.RWMutex
	records map[string]attendance.Record // user_id|date
	lists   int
}

func NewAttendance(seed ...attendance.Record) *Attendance {
	a := &Attendance{records: make(map[string]attendance.Record)}
	for _, r := range seed {
		r.Date = calendar.Day(r.Date)
		if r.ID == "" {
			r.ID = newID()
		}
		a.records[recordKey(r.UserID, r.Date)] = r
	}
	return a
}

func recordKey(userID string, date time.Time) string {
	return userID + "|" + calendar.Key(date)
}

func (r *Attendance) List(_ context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++

	var allowed map[string]struct{}
	if filter.UserIDs != nil {
		allowed = make(map[string]struct{}, len(filter.UserIDs))
		for _, id := range filter.UserIDs {
			allowed[id] = struct{}{}
		}
	}

	var out []attendance.Record
	for _, rec := range r.records {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[rec.UserID]; !ok {
				continue
			}
		}
		if filter.StartDate != nil && rec.Date.Before(calendar.Day(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && rec.Date.After(calendar.Day(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *Attendance) Upsert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	if err := r.writeErr(); err != nil {
		return attendance.Record{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	record.Date = calendar.Day(record.Date)
	key := recordKey(record.UserID, record.Date)
	now := clock()
	if existing, ok := r.records[key]; ok {
		existing.Status = record.Status
		existing.Notes = record.Notes
		existing.UpdatedAt = now
		r.records[key] = existing
		return existing, nil
	}
	record.ID = newID()
	record.CreatedAt, record.UpdatedAt = now, now
	r.records[key] = record
	return record, nil
}

// Len returns the number of stored records.
func (r *Attendance) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// ListCalls returns how many times List was called.
func (r *Attendance) ListCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lists
}
