package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/auth"
)

// TokenCookie is the cookie the login endpoint sets and the auth
// middleware reads.
const TokenCookie = "token"

// ctxKey is unexported so no other package can forge session values in a
// request context.
type ctxKey int

const (
	userIDKey ctxKey = iota
	userEmailKey
)

// UserID returns the authenticated user's ID from the request context.
// The second return is false when the request did not pass RequireAuth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// UserEmail returns the authenticated user's email from the request context.
func UserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

// NewAuthenticator returns a middleware that verifies the session token
// cookie and, on success, stores the user's ID and email in the request
// context. Requests without a valid token pass through unauthenticated —
// rejection is RequireAuth's job, so public endpoints can share the chain.
func NewAuthenticator(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userEmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate with 401.
// Wire it after NewAuthenticator on routes that need a session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewAdminGate returns a middleware that rejects authenticated users whose
// email is not on the admin allow-list with 403. Wire it after RequireAuth.
// The allow-list comes from config — never a module-level constant.
func NewAdminGate(adminEmails []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[e] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := UserEmail(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, ok := allowed[email]; !ok {
				writeJSONError(w, http.StatusForbidden, "access denied, admins only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError emits the same {"error": ...} body shape the handler
// layer uses, without importing it.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
