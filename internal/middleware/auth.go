package middleware

import (
	"net/http"

	"github.com/jsquie/eighty-six/internal/auth"
	"github.com/jsquie/eighty-six/pkg/apierror"
)

// AuthConfig holds configuration for the API auth middleware.
type AuthConfig struct {
	Strategy auth.Strategy
}

// NewAuthMiddleware guards the JSON API with the session established by the
// Session middleware. Dependencies are injected via closure, no global
// state. Boards running without authentication pass everything through.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Strategy.AllowAnonymous() {
				next.ServeHTTP(w, r)
				return
			}

			sess := GetSession(r.Context())
			if sess == nil || !sess.Active() {
				writeError(w, apierror.Unauthorized("Sign in to use the board API"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}
