package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/capacity"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CapacityHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	ListSettings(w http.ResponseWriter, r *http.Request)
	UpdateSetting(w http.ResponseWriter, r *http.Request)
}

type capacityHandlerImpl struct {
	capacityService capacity.CapacityService
}

func NewCapacityHandler(capacityService capacity.CapacityService) CapacityHandler {
	return &capacityHandlerImpl{
		capacityService: capacityService,
	}
}

// GetWeek implements CapacityHandler.
func (h *capacityHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var weekOffset int
	if v := r.URL.Query().Get("weekOffset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "weekOffset must be an integer", map[string]string{"weekOffset": v})
			return
		}
		weekOffset = n
	}

	result, err := h.capacityService.GetWeek(r.Context(), s, weekOffset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSettings implements CapacityHandler.
func (h *capacityHandlerImpl) ListSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.capacityService.ListSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSetting implements CapacityHandler.
func (h *capacityHandlerImpl) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req capacity.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update capacity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DayOfWeek = chi.URLParam(r, "day")

	result, err := h.capacityService.UpdateSetting(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Capacity updated", result)
}
