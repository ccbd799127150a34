package model

import "time"

// AuthState describes whether a session carries an authenticated identity.
type AuthState string

const (
	// AuthNone means the session is unauthenticated.
	AuthNone AuthState = "none"
	// AuthActive means the session holds a live identity and token pair.
	AuthActive AuthState = "active"
)

// User is the authenticated identity attached to an active session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is the per-UI-session state, threaded explicitly through the
// render cycle instead of living in ambient globals. Exactly one of the
// two auth states holds at any render: AuthNone, or AuthActive with a
// fully populated identity and token pair.
type Session struct {
	ID    string    `json:"id"`
	State AuthState `json:"state"`

	User         User      `json:"user,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`

	// Pending is the board action recorded by the last button click,
	// applied before the next query so a freshly resolved item never
	// renders as still unresolved.
	Pending *PendingAction `json:"pending,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the session holds a live identity.
func (s *Session) Active() bool {
	return s.State == AuthActive
}

// Activate moves the session to AuthActive with the given grant. All
// identity fields are set together so the session is never partially
// populated.
func (s *Session) Activate(g TokenGrant) {
	s.State = AuthActive
	s.User = g.User
	s.AccessToken = g.AccessToken
	s.RefreshToken = g.RefreshToken
	s.ExpiresAt = g.ExpiresAt
}

// Deactivate returns the session to AuthNone, clearing identity and tokens.
func (s *Session) Deactivate() {
	s.State = AuthNone
	s.User = User{}
	s.AccessToken = ""
	s.RefreshToken = ""
	s.ExpiresAt = time.Time{}
}

// Identity returns the name to stamp into resolved_by: the signed-in email,
// or "anonymous" on boards that run without authentication.
func (s *Session) Identity() string {
	if s.Active() && s.User.Email != "" {
		return s.User.Email
	}
	return "anonymous"
}

// TokenGrant is the result of a successful authentication exchange:
// password grant, refresh-token restoration, or authorization-code exchange.
type TokenGrant struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
