package router

import (
	"net/http"

	"github.com/jsquie/eighty-six/internal/handler"
	"github.com/jsquie/eighty-six/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	BoardHandler      *handler.BoardHandler
	ItemHandler       *handler.ItemHandler
	SessionMiddleware func(http.Handler) http.Handler
	AuthMiddleware    func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no session required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	// Board pages - every request runs through the session middleware so
	// the render cycle always has exactly one session value.
	r.Group(func(r chi.Router) {
		if cfg.SessionMiddleware != nil {
			r.Use(cfg.SessionMiddleware)
		}

		if cfg.BoardHandler != nil {
			r.Get("/", cfg.BoardHandler.ShowBoard)
			r.Post("/board/actions", cfg.BoardHandler.HandleAction)
			r.Post("/login", cfg.BoardHandler.HandleLogin)
			r.Post("/logout", cfg.BoardHandler.HandleLogout)
			r.Get("/auth/callback", cfg.BoardHandler.OAuthCallback)
		}

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			if cfg.Handler != nil {
				r.Get("/health", cfg.Handler.Health)
				r.Get("/ready", cfg.Handler.Ready)
			}

			// Item endpoints require an authenticated session unless the
			// board runs without authentication.
			r.Group(func(r chi.Router) {
				if cfg.AuthMiddleware != nil {
					r.Use(cfg.AuthMiddleware)
				}

				if cfg.ItemHandler != nil {
					r.Get("/items", cfg.ItemHandler.ListItems)
					r.Post("/items/{id}/resolve", cfg.ItemHandler.ResolveItem)
					r.Delete("/items/{id}", cfg.ItemHandler.DeleteItem)
				}
			})
		})
	})

	return r
}
