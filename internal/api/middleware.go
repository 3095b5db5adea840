// Package api implements the Verdant REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

// TokenResolver maps a bearer token to the owning user's id.
type TokenResolver func(token string) (userID string, err error)

// AuthMiddleware returns middleware that resolves the acting user.
// In disabled mode every request acts as defaultUserID (the bootstrap local
// user). In token mode requests must carry "Authorization: Bearer <token>"
// resolving to a known user. The owner id is threaded through the request
// context, never ambient.
func AuthMiddleware(enabled bool, resolve TokenResolver, defaultUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), defaultUserID)))
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			userID, err := resolve(strings.TrimPrefix(auth, "Bearer "))
			if err != nil || userID == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// requestUserID returns the owner id placed in the context by AuthMiddleware.
func requestUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
