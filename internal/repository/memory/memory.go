// Package memory holds in-process implementations of the repository
// interfaces. They back APP_STORAGE=memory runs and the service and handler
// tests, and follow the PostgreSQL repositories' semantics: upserts keyed on
// (user_id, date), not-found sentinels, and server-assigned ids and timestamps.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transactor runs fn directly; the stores are individually locked.
type Transactor struct{}

func (Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failer injects an error into write paths.
type failer struct {
	mu  sync.Mutex
	err error
}

// FailWrites makes every following write return err; nil restores them.
func (f *failer) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *failer) writeErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

var clock = func() time.Time { return time.Now().UTC() }
