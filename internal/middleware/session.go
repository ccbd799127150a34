package middleware

import (
	"context"
	"net/http"

	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/internal/session"
)

// SessionKey is the context key for the request's session.
const SessionKey contextKey = "session"

// Session is a middleware that resolves each request to exactly one
// session value, creating a fresh unauthenticated one when none exists.
// Handlers mutate the session and persist it through the manager; nothing
// about the current user lives in globals.
func Session(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := mgr.Load(w, r)
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the session from request context.
func GetSession(ctx context.Context) *model.Session {
	if sess, ok := ctx.Value(SessionKey).(*model.Session); ok {
		return sess
	}
	return nil
}
