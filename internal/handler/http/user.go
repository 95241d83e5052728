package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/office-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	CompleteFirstLogin(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DirectReports(w http.ResponseWriter, r *http.Request)
	MyTeam(w http.ResponseWriter, r *http.Request)
	Hierarchy(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// Me implements UserHandler.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.Me(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CompleteFirstLogin implements UserHandler.
func (h *userHandlerImpl) CompleteFirstLogin(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.CompleteFirstLogin(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "First login completed", result)
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.List(r.Context(), s, r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

// Get implements UserHandler.
func (h *userHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.Get(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements UserHandler.
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.Create(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", result)
}

// Update implements UserHandler.
func (h *userHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.userService.Update(r.Context(), s, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", result)
}

// Delete implements UserHandler.
func (h *userHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), s, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

// DirectReports implements UserHandler.
func (h *userHandlerImpl) DirectReports(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.DirectReports(r.Context(), s, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyTeam implements UserHandler.
func (h *userHandlerImpl) MyTeam(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.MyTeam(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Hierarchy implements UserHandler.
func (h *userHandlerImpl) Hierarchy(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.userService.Hierarchy(r.Context(), s)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
