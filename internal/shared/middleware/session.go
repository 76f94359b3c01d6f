package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"horizon/internal/domain/user"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	UserKey   ContextKey = "user"
)

// Session resolves the document-store session to a user and stores it in the
// request context. The session secret is read from the configured cookie
// (browser requests) or a Bearer Authorization header (API clients).
func Session(store user.SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var secret string

			if cookie, err := r.Cookie(cookieName); err == nil {
				secret = cookie.Value
			} else {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					http.Error(w, "Authentication required", http.StatusUnauthorized)
					return
				}
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || parts[0] != "Bearer" {
					http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
					return
				}
				secret = parts[1]
			}

			u, err := store.UserBySession(r.Context(), secret)
			if err != nil {
				if errors.Is(err, user.ErrNoSession) {
					http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Failed to resolve session", http.StatusBadGateway)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, u.ID)
			ctx = context.WithValue(ctx, UserKey, u)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFrom extracts the authenticated user id from the request context.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}
