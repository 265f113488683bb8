package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/otcheredev/clinic-pos/internal/auth"
	"github.com/rs/zerolog/log"
)

type contextKey string

const requestContextKey contextKey = "request_context"

// Authenticate verifies the Bearer token and stores the caller's
// request context for downstream handlers. Requests without a valid
// token, or whose token carries no tenant, are rejected.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing bearer token")
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token verification failed")
				unauthorized(w, "Invalid or expired token")
				return
			}

			rc := auth.ContextFromClaims(claims)
			if !rc.Authenticated() {
				log.Warn().Str("path", r.URL.Path).Msg("Token missing subject or tenant")
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), requestContextKey, rc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestContext extracts the authenticated caller from the request
// context.
func GetRequestContext(ctx context.Context) (auth.RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(auth.RequestContext)
	return rc, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "Unauthorized",
		"message": message,
	})
}
