package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

// WithUser stores the authenticated user id on ctx.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserFromContext returns the user id set by Middleware, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(contextKey{}).(string)
	return userID, ok && userID != ""
}

// Middleware rejects requests without a valid bearer token and exposes the token
// subject through UserFromContext.
func Middleware(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				slog.Debug("rejected token", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}
