package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trackaexpense/notify/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's uid
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email
	UserEmailKey ContextKey = "user_email"
)

// Identity resolves the current user from request headers. Authentication
// itself happens upstream (the identity provider in front of this API);
// all this service needs is "the current user has an id and an email".
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get("X-User-Email"))
		if email == "" {
			response.Unauthorized(w, "X-User-Email header required")
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailKey, email)
		if uid := strings.TrimSpace(r.Header.Get("X-User-ID")); uid != "" {
			ctx = context.WithValue(ctx, UserIDKey, uid)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserID extracts the user uid from the request context
func GetUserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok
}
