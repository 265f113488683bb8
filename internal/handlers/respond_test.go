package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otcheredev/clinic-pos/internal/apperrors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteErrorMapping(t *testing.T) {
	patientID := uuid.New()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "duplicate phone",
			err:        apperrors.DuplicatePhone("0244000000"),
			wantStatus: http.StatusConflict,
			wantCode:   "DuplicatePhoneNumber",
			wantDetail: "0244000000",
		},
		{
			name:       "duplicate appointment",
			err:        apperrors.DuplicateAppointment(),
			wantStatus: http.StatusConflict,
			wantCode:   "DuplicateAppointment",
		},
		{
			name:       "not found",
			err:        apperrors.NotFound("patient", patientID),
			wantStatus: http.StatusNotFound,
			wantCode:   "NotFound",
		},
		{
			name:       "forbidden",
			err:        apperrors.Forbidden("tenant mismatch"),
			wantStatus: http.StatusForbidden,
			wantCode:   "Forbidden",
		},
		{
			name:       "conflict",
			err:        apperrors.Conflict("branch belongs to another tenant"),
			wantStatus: http.StatusConflict,
			wantCode:   "Conflict",
		},
		{
			name:       "unclassified",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "InternalError",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)

			WriteError(rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.wantCode, body.Error)
			assert.Equal(t, tc.wantDetail, body.Detail)
		})
	}
}

func TestWriteErrorValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)

	WriteError(rec, req, apperrors.Validation(map[string][]string{
		"role": {"must be one of Admin, User, Viewer"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "ValidationFailed", body.Error)
	assert.Equal(t, []string{"must be one of Admin, User, Viewer"}, body.Errors["role"])
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)

	WriteError(rec, req, apperrors.Internal(errors.New("dial tcp 10.0.0.5:5432: connect: refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", 1, 20},
		{"page=3&pageSize=50", 3, 50},
		{"page=0&pageSize=0", 1, 20},
		{"page=-5", 1, 20},
		{"pageSize=500", 1, 100},
		{"page=abc&pageSize=xyz", 1, 20},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/patients?"+tc.query, nil)
		page, pageSize := parsePagination(req)
		assert.Equal(t, tc.wantPage, page, "query %q", tc.query)
		assert.Equal(t, tc.wantPageSize, pageSize, "query %q", tc.query)
	}
}
