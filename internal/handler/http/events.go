package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/sse"
)

const defaultKeepalive = 30 * time.Second

type EventsHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

type eventsHandlerImpl struct {
	jwtService jwt.Service
	hub        *sse.Hub
	keepalive  time.Duration
}

func NewEventsHandler(jwtService jwt.Service, hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
		keepalive:  defaultKeepalive,
	}
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *eventsHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(s.User.ID)
	if err != nil {
		slog.Error("Failed to generate SSE token", "user_id", s.User.ID, "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes change events to the connected user
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot set headers, so the token travels in the query
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"userId\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
