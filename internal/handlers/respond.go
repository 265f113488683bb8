package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Detail  string              `json:"detail,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps a domain error to its HTTP representation. Internal
// errors are logged and answered with a generic body so database or
// broker detail never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var e *apperrors.Error
	if !errors.As(err, &e) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Unclassified error")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "InternalError",
			Message: "An internal error occurred",
		})
		return
	}

	body := errorBody{Error: e.Code, Message: e.Message}

	switch e.Kind {
	case apperrors.KindDuplicateValue:
		body.Detail = e.Value
		writeJSON(w, http.StatusConflict, body)
	case apperrors.KindNotFound:
		writeJSON(w, http.StatusNotFound, body)
	case apperrors.KindForbidden:
		writeJSON(w, http.StatusForbidden, body)
	case apperrors.KindValidationFailed:
		body.Errors = e.Fields
		writeJSON(w, http.StatusBadRequest, body)
	case apperrors.KindConflict:
		writeJSON(w, http.StatusConflict, body)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Internal error")
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "InternalError",
			Message: "An internal error occurred",
		})
	}
}
