package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/calendar"
)

// Delegations joins delegator and delegate names from users when set.
type Delegations struct {
	failer
	mu          sync.RWMutex
	users       *Users
	delegations map[string]delegation.Delegation
}

func NewDelegations(users *Users, seed ...delegation.Delegation) *Delegations {
	d := &Delegations{users: users, delegations: make(map[string]delegation.Delegation)}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = newID()
		}
		d.delegations[s.ID] = s
	}
	return d
}

func (r *Delegations) sorted(keep func(delegation.Delegation) bool) []delegation.Delegation {
	var out []delegation.Delegation
	for _, d := range r.delegations {
		if keep(d) {
			out = append(out, r.withNames(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *Delegations) List(_ context.Context) ([]delegation.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(delegation.Delegation) bool { return true }), nil
}

func (r *Delegations) ListByDelegate(_ context.Context, delegateID string) ([]delegation.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(d delegation.Delegation) bool { return d.DelegateID == delegateID }), nil
}

func (r *Delegations) GetByID(_ context.Context, id string) (delegation.Delegation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.delegations[id]
	if !ok {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	return r.withNames(d), nil
}

func (r *Delegations) Create(_ context.Context, d delegation.Delegation) (delegation.Delegation, error) {
	if err := r.writeErr(); err != nil {
		return delegation.Delegation{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = newID()
	now := clock()
	d.CreatedAt, d.UpdatedAt = now, now
	r.delegations[d.ID] = d
	return r.withNames(d), nil
}

func (r *Delegations) Deactivate(_ context.Context, id string) (delegation.Delegation, error) {
	if err := r.writeErr(); err != nil {
		return delegation.Delegation{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.delegations[id]
	if !ok {
		return delegation.Delegation{}, delegation.ErrDelegationNotFound
	}
	if d.IsActive {
		now := clock()
		d.IsActive = false
		d.RevokedAt = &now
		d.UpdatedAt = now
		r.delegations[id] = d
	}
	return r.withNames(d), nil
}

func (r *Delegations) DeactivateExpired(_ context.Context, asOf time.Time) (int64, error) {
	if err := r.writeErr(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.delegations {
		if d.IsActive && calendar.Day(d.EndDate).Before(calendar.Day(asOf)) {
			d.IsActive = false
			d.UpdatedAt = clock()
			r.delegations[id] = d
			n++
		}
	}
	return n, nil
}

func (r *Delegations) withNames(d delegation.Delegation) delegation.Delegation {
	if r.users == nil {
		return d
	}
	r.users.mu.RLock()
	defer r.users.mu.RUnlock()
	if u, ok := r.users.users[d.DelegatorID]; ok {
		name := u.Name
		d.DelegatorName = &name
	}
	if u, ok := r.users.users[d.DelegateID]; ok {
		name := u.Name
		d.DelegateName = &name
	}
	return d
}
