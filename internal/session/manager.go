package session

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/pkg/uid"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "board_session"

// Manager owns the session lifecycle for one board instance: it resolves
// the incoming request to exactly one Session value, and persists changes
// back to the store. Handlers receive the Session explicitly; nothing about
// the current user lives in globals.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure}
}

// Load resolves the request to a session: an existing one when the cookie
// names a live record, otherwise a fresh unauthenticated session whose id
// cookie is set on the response.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *model.Session {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		sess, err := m.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess
		}
		if err != ErrNotFound {
			log.Printf("[SessionManager] Failed to load session: %v", err)
		}
	}

	sess := &model.Session{
		ID:        uid.New(),
		State:     model.AuthNone,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.store.Put(r.Context(), sess, m.ttl); err != nil {
		log.Printf("[SessionManager] Failed to store new session: %v", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// Save persists the session back to the store.
func (m *Manager) Save(ctx context.Context, sess *model.Session) error {
	return m.store.Put(ctx, sess, m.ttl)
}
