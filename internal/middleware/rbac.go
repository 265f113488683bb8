package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/otcheredev/clinic-pos/internal/models"
	"github.com/rs/zerolog/log"
)

// RequireRole allows the request through only when the authenticated
// caller holds one of the given roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc, ok := GetRequestContext(r.Context())
			if !ok {
				unauthorized(w, "Missing bearer token")
				return
			}

			if _, ok := allowed[models.Role(rc.Role)]; !ok {
				log.Warn().
					Str("role", rc.Role).
					Str("path", r.URL.Path).
					Msg("Role not permitted")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "Forbidden",
					"message": "Insufficient role for this operation",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
