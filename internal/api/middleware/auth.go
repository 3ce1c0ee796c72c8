package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/teamboard/teamboard/internal/api/response"
	"github.com/teamboard/teamboard/internal/auth"
)

const identityKey contextKey = "identity"

// SessionCookie is the name of the session cookie set at login.
const SessionCookie = "token"

// extractToken pulls the session token from the Authorization header or the
// session cookie. The header takes precedence when both are present.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}

	return ""
}

// Auth is middleware that resolves the caller's identity from a bearer token
// or session cookie. The user record is re-fetched on every request, so a
// token outlives neither the account nor its role.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.Err(w, http.StatusUnauthorized, "Access token is required")
				return
			}

			identity, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrInvalidToken):
					response.Err(w, http.StatusUnauthorized, "Invalid or expired token")
				case errors.Is(err, auth.ErrUnknownUser):
					response.Err(w, http.StatusUnauthorized, "User not found")
				default:
					response.Err(w, http.StatusInternalServerError, "Authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}

// WithIdentity returns a context carrying the given identity. Intended for
// handler tests that bypass the Auth middleware.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
