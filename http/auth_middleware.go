package http

import (
	"context"
	"net/http"
	"strings"
)

// Authenticator resolves a bearer token to a username.
type Authenticator interface {
	Authenticate(token string) (string, bool)
}

type contextKey string

const usernameKey contextKey = "username"

// AuthMiddleware rejects requests without a valid bearer token and puts
// the resolved username on the request context.
func AuthMiddleware(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := auth.Authenticate(bearerToken(r))
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UsernameFrom returns the authenticated username stored by
// AuthMiddleware.
func UsernameFrom(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(usernameKey).(string)
	return username, ok && username != ""
}

func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
