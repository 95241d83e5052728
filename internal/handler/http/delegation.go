package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/delegation"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DelegationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
}

type delegationHandlerImpl struct {
	delegationService delegation.DelegationService
}

func NewDelegationHandler(delegationService delegation.DelegationService) DelegationHandler {
	return &delegationHandlerImpl{
		delegationService: delegationService,
	}
}

// Create implements DelegationHandler.
func (h *delegationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req delegation.CreateDelegationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create delegation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.delegationService.Create(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Delegation created successfully", result)
}

// Revoke implements DelegationHandler. The id comes from the path, or from
// the id query parameter on DELETE /delegations.
func (h *delegationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		response.BadRequest(w, "Delegation id is required", nil)
		return
	}

	result, err := h.delegationService.Revoke(r.Context(), s, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Delegation revoked", result)
}

// List implements DelegationHandler.
func (h *delegationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.delegationService.List(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Active implements DelegationHandler.
func (h *delegationHandlerImpl) Active(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.delegationService.Active(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
