package middleware

import (
	"context"
	"net/http"
	"strings"
)

// DefaultUsername serves requests that do not identify themselves. There is
// no account system; the username header is trusted as-is.
const DefaultUsername = "demo_user"

// usernameKey is the context key for the acting username.
type usernameKey struct{}

// Identity resolves the acting user from the X-User header and adds it to
// the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.Header.Get("X-User"))
		if username == "" {
			username = DefaultUsername
		}

		ctx := context.WithValue(r.Context(), usernameKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUsername retrieves the acting username from the context.
func GetUsername(ctx context.Context) string {
	if u, ok := ctx.Value(usernameKey{}).(string); ok {
		return u
	}
	return DefaultUsername
}
