package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/otcheredev/clinic-pos/internal/middleware"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/services"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create books an appointment for a patient at a branch.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid request body"})
		return
	}

	appointment, err := h.appointmentService.Create(r.Context(), rc, &req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

// List returns a page of the caller's tenant's appointments.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	branchID, err := parseOptionalUUID(r, "branchId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid branchId"})
		return
	}

	page, pageSize := parsePagination(r)

	resp, err := h.appointmentService.List(r.Context(), rc, branchID, page, pageSize)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
