package auth

import (
	"context"
	"net/http"
)

type contextKey string

// SessionKey is the context key under which WithSession stores the session.
const SessionKey = contextKey("session")

// LoginPath returns the login entry point matching a required role.
func LoginPath(required Role) string {
	if required == RoleAdmin {
		return "/admin/login"
	}
	return "/user/login"
}

// SessionFromContext returns the session placed by WithSession, or the
// anonymous session when none is present.
func SessionFromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(SessionKey).(Session); ok {
		return s
	}
	return Anonymous()
}

// WithSession resolves the session cookie once per request and stores the
// result in the context. It never denies; gating is left to RequireRole and
// RequireAuthenticated.
func WithSession(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), SessionKey, m.FromRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a view route on an exact role. Denied requests are
// redirected to the matching login page rather than given a hard error;
// this is a user-facing portal, not an API surface.
func RequireRole(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFromContext(r.Context()).Authorize(required) {
				http.Redirect(w, r, LoginPath(required), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated gates a view route on any logged-in role, redirecting
// anonymous clients to the user login page.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFromContext(r.Context()).Authenticated() {
				http.Redirect(w, r, LoginPath(RoleUser), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
