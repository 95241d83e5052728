// Package cache stores computed read models (analytics, office capacity)
// until the next attendance write invalidates them.
//
// Every prefix carries a generation number. Readers build keys with
// Versioned, and writers call Invalidate, which bumps the generation. A
// value computed from data read before an invalidation is stored under the
// old generation and is never served again.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Key prefixes of the cached read models.
const (
	PrefixAnalytics = "analytics:"
	PrefixCapacity  = "capacity:"
)

type Cache interface {
	// Get decodes the value at key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePrefix drops every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string) error

	// Generation returns the current generation of prefix, 0 if never invalidated
	Generation(ctx context.Context, prefix string) (int64, error)
	// Invalidate bumps the generation of prefix and drops its keys
	Invalidate(ctx context.Context, prefix string) error
}

// Key joins parts into a cache key under prefix. Empty parts are kept so
// that positional keys stay unambiguous.
func Key(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, ":")
}

// Versioned returns the key for parts under the current generation of prefix.
func Versioned(ctx context.Context, c Cache, prefix string, parts ...string) (string, error) {
	gen, err := c.Generation(ctx, prefix)
	if err != nil {
		return "", err
	}
	return Key(prefix, append([]string{"v" + strconv.FormatInt(gen, 10)}, parts...)...), nil
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache used when no Redis address is configured
// and in tests.
type Memory struct {
	mu          sync.RWMutex
	entries     map[string]memoryEntry
	generations map[string]int64
	now         func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries:     make(map[string]memoryEntry),
		generations: make(map[string]int64),
		now:         time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || (!entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt)) {
		return false, nil
	}
	return true, json.Unmarshal(entry.value, dest)
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{value: data}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletePrefix(prefix)
	return nil
}

func (m *Memory) deletePrefix(prefix string) {
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
}

func (m *Memory) Generation(_ context.Context, prefix string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generations[prefix], nil
}

func (m *Memory) Invalidate(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[prefix]++
	m.deletePrefix(prefix)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
