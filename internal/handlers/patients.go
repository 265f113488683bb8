package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/middleware"
	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/otcheredev/clinic-pos/internal/services"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a new patient in the caller's tenant.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid request body"})
		return
	}

	patient, err := h.patientService.Create(r.Context(), rc, &req)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, patient)
}

// List returns a page of the caller's tenant's patients. A tenantId
// query parameter naming a different tenant is refused.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	declaredTenantID := rc.TenantID
	if raw := r.URL.Query().Get("tenantId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid tenantId"})
			return
		}
		declaredTenantID = id
	}

	branchID, err := parseOptionalUUID(r, "branchId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "ValidationFailed", Message: "Invalid branchId"})
		return
	}

	page, pageSize := parsePagination(r)

	resp, err := h.patientService.List(r.Context(), rc, declaredTenantID, branchID, page, pageSize)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func parseOptionalUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 20

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		}
	}
	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			pageSize = n
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
