package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
)

type Settings struct {
	failer
	mu       sync.RWMutex
	settings map[capacity.DayOfWeek]capacity.Setting
}

func NewSettings(seed ...capacity.Setting) *Settings {
	s := &Settings{settings: make(map[capacity.DayOfWeek]capacity.Setting)}
	for _, setting := range seed {
		if setting.ID == "" {
			setting.ID = newID()
		}
		s.settings[setting.DayOfWeek] = setting
	}
	return s
}

func (r *Settings) List(_ context.Context) ([]capacity.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []capacity.Setting
	for _, day := range capacity.DaysOfWeek {
		if s, ok := r.settings[day]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Settings) Upsert(_ context.Context, setting capacity.Setting) (capacity.Setting, error) {
	if err := r.writeErr(); err != nil {
		return capacity.Setting{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.settings[setting.DayOfWeek]; ok {
		setting.ID = existing.ID
	} else {
		setting.ID = newID()
	}
	setting.UpdatedAt = clock()
	r.settings[setting.DayOfWeek] = setting
	return setting, nil
}
