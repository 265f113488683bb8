package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/otcheredev/clinic-pos/internal/models"
)

func testTokenService() *auth.TokenService {
	return auth.NewTokenService("test-secret", "ClinicPOS", "ClinicPOS", time.Hour)
}

func mintToken(t *testing.T, tokens *auth.TokenService, role models.Role, branchIDs []uuid.UUID) (string, models.User) {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Username: "dr.mensah",
		Role:     role,
	}
	token, err := tokens.Generate(&user, branchIDs)
	require.NoError(t, err)
	return token, user
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens := testTokenService()
	branchID := uuid.New()
	token, user := mintToken(t, tokens, models.RoleAdmin, []uuid.UUID{branchID})

	var got auth.RequestContext
	handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, ok := GetRequestContext(r.Context())
		require.True(t, ok)
		got = rc
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, user.TenantID, got.TenantID)
	assert.Equal(t, string(models.RoleAdmin), got.Role)
	assert.Equal(t, []uuid.UUID{branchID}, got.BranchIDs)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	tokens := testTokenService()
	handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	cases := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic abc123",
		"garbage token":   "Bearer not.a.jwt",
		"wrong signature": "Bearer " + mintWithSecret(t, "other-secret"),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Unauthorized")
		})
	}
}

func mintWithSecret(t *testing.T, secret string) string {
	t.Helper()
	other := auth.NewTokenService(secret, "ClinicPOS", "ClinicPOS", time.Hour)
	token, _ := mintToken(t, other, models.RoleUser, nil)
	return token
}

func TestRequireRole(t *testing.T) {
	tokens := testTokenService()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Authenticate(tokens)(RequireRole(models.RoleAdmin)(next))

	adminToken, _ := mintToken(t, tokens, models.RoleAdmin, nil)
	viewerToken, _ := mintToken(t, tokens, models.RoleViewer, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Forbidden")
}
