package handlers

import (
	"net/http"

	"github.com/otcheredev/clinic-pos/internal/middleware"
	"github.com/otcheredev/clinic-pos/internal/services"
)

type BranchHandler struct {
	branchService *services.BranchService
}

func NewBranchHandler(branchService *services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// List returns all branches of the caller's tenant.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	rc, ok := middleware.GetRequestContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Message: "Missing bearer token"})
		return
	}

	branches, err := h.branchService.List(r.Context(), rc)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, branches)
}
