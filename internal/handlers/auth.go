package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for a signed token. Unknown usernames and
// wrong passwords get the same answer.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "ValidationFailed",
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorBody{
				Error:   "Unauthorized",
				Message: "Invalid credentials",
			})
			return
		}
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
