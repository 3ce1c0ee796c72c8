package middleware

import (
	"net/http"

	"github.com/teamboard/teamboard/internal/api/response"
)

// RequireAdmin is middleware that rejects non-admin callers with 403. It must
// run after Auth. Admin status is team-scoped; cross-team checks remain the
// handlers' responsibility.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		if identity == nil {
			response.Err(w, http.StatusUnauthorized, "Access token is required")
			return
		}

		if !identity.IsAdmin() {
			response.Err(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
