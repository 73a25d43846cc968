package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Identity is the verified user attached to a request after the bearer token
// checks out. It is the only identity downstream handlers may trust; any
// user id arriving in a request body is ignored for authorization.
type Identity struct {
	UserID   int
	Username string
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the verified identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the verified identity set by the middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

const bearerPrefix = "Bearer "

// Middleware creates a middleware for protecting routes. Requests without a
// bearer token are rejected before they reach the handler; requests with a
// valid one proceed with the verified identity in the request context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeAuthError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
			if tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			claims, err := m.Verify(tokenStr)
			if err != nil {
				if err == ErrTokenExpired {
					writeAuthError(w, http.StatusUnauthorized, "token expired")
				} else {
					writeAuthError(w, http.StatusForbidden, "invalid token")
				}
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
