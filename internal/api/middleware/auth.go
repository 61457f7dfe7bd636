package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/room-booking/backend/internal/session"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticator resolves bearer tokens to user identities. Resolved
// identities are held in the session cache so repeated requests with
// the same token skip the lookup.
type Authenticator struct {
	cache  *session.Cache
	tokens map[string]session.User
}

// NewAuthenticator creates an authenticator over a static token table.
func NewAuthenticator(cache *session.Cache, tokens map[string]session.User) *Authenticator {
	return &Authenticator{cache: cache, tokens: tokens}
}

// Resolve maps a bearer token to a user.
func (a *Authenticator) Resolve(token string) (session.User, bool) {
	if u, ok := a.cache.Get(token); ok {
		return u, true
	}

	u, ok := a.tokens[token]
	if ok {
		a.cache.Put(token, u)
	}
	return u, ok
}

// RequireUser rejects requests without a valid bearer token and stores
// the resolved user on the request context.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.userFromRequest(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "A valid bearer token is required")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin is RequireUser plus an admin role check.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.userFromRequest(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "A valid bearer token is required")
			return
		}
		if !user.IsAdmin() {
			WriteError(w, http.StatusForbidden, ErrForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *Authenticator) userFromRequest(r *http.Request) (session.User, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return session.User{}, false
	}
	return a.Resolve(token)
}

// WithUser stores a user on a context.
func WithUser(ctx context.Context, user session.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom retrieves the authenticated user from a request context.
func UserFrom(ctx context.Context) (session.User, bool) {
	u, ok := ctx.Value(userContextKey).(session.User)
	return u, ok
}
