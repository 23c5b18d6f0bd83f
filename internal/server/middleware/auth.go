package middleware

import (
	"context"
	"net/http"
	"strings"

	userdomain "demo-bank/backend/internal/user/domain"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

const bearerPrefix = "bearer "

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

// ErrorWriter writes an error response; the handler package supplies one so
// middleware failures use the same JSON shape as handler failures.
type ErrorWriter func(w http.ResponseWriter, status int, message string)

// TokenFromRequest extracts the session token from the session cookie,
// falling back to an Authorization Bearer header for non-browser clients.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) > len(bearerPrefix) && strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(v[len(bearerPrefix):])
	}
	return ""
}

// RequireAuth validates the session token on every request and stores the
// resolved user in context. Requests without a live session get 401.
func RequireAuth(auth Authenticator, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
