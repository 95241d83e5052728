package sse

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const subscriberBuffer = 10

// Event names published on the hub.
const (
	EventAttendanceUpdated = "attendance.updated"
	EventCapacityUpdated   = "capacity.updated"
	EventDelegationCreated = "delegation.created"
	EventDelegationRevoked = "delegation.revoked"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	ID     string
	UserID string
	Event  string
	Data   interface{}
	At     time.Time
}

// Hub manages SSE subscribers and event broadcasting
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// NewEvent stamps an event with a time-ordered id.
func NewEvent(name string, data interface{}) Event {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Event{ID: id.String(), Event: name, Data: data, At: time.Now().UTC()}
}

// Subscribe registers a new subscriber for a user and returns the event channel and cleanup function
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific user
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.UserID = userID
	h.send(h.subscribers[userID], event)
}

// PublishToMany sends an event to multiple users. Duplicate ids receive it once.
func (h *Hub) PublishToMany(userIDs []string, event Event) {
	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		h.Publish(userID, event)
	}
}

// Broadcast sends an event to every connected user
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, subs := range h.subscribers {
		e := event
		e.UserID = userID
		h.send(subs, e)
	}
}

// send must be called with h.mu held.
func (h *Hub) send(subs map[chan Event]struct{}, event Event) {
	for ch := range subs {
		select {
		case ch <- event:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

// SubscriberCount returns the number of active subscribers for a user
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}

// TotalSubscribers returns the total number of active subscribers across all users
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
