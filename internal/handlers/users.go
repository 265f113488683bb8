package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/middleware"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create provisions a staff account in the caller's tenant.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid request body"})
		return
	}

	user, err := h.userService.Create(r.Context(), rc, &req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// List returns the caller's tenant's staff accounts.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	users, err := h.userService.List(r.Context(), rc)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// AssignRole changes a user's role within the caller's tenant.
func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid user id"})
		return
	}

	var req models.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid request body"})
		return
	}

	user, err := h.userService.AssignRole(r.Context(), rc, userID, &req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
