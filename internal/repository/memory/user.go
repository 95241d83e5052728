package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
)

type Users struct {
	failer
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUsers(seed ...user.User) *Users {
	u := &Users{users: make(map[string]user.User)}
	for _, s := range seed {
		u.users[s.ID] = s
	}
	return u
}

func (r *Users) List(_ context.Context, filter user.UserFilter) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, u := range r.users {
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
				continue
			}
		}
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.ChapterLeadID != nil && (u.ChapterLeadID == nil || *u.ChapterLeadID != *filter.ChapterLeadID) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Users) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *Users) Create(_ context.Context, newUser user.User) (user.User, error) {
	if err := r.writeErr(); err != nil {
		return user.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	if newUser.ID == "" {
		newUser.ID = newID()
	}
	now := clock()
	newUser.CreatedAt, newUser.UpdatedAt = now, now
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *Users) Update(_ context.Context, u user.User) (user.User, error) {
	if err := r.writeErr(); err != nil {
		return user.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.PasswordHash = existing.PasswordHash
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = clock()
	r.users[u.ID] = u
	return u, nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	if err := r.writeErr(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *Users) CountByRole(_ context.Context, role user.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *Users) CountReporters(_ context.Context, chapterLeadID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.users {
		if u.ReportsTo(chapterLeadID) {
			n++
		}
	}
	return n, nil
}

func (r *Users) CompleteFirstLogin(_ context.Context, id string) error {
	if err := r.writeErr(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsFirstLogin = false
	r.users[id] = u
	return nil
}
