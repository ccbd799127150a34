package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jsquie/eighty-six/internal/model"
)

// AuthClient is the slice of the backend's auth surface the reconciler
// needs. Implemented by supabase.Client.
type AuthClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (*model.TokenGrant, error)
	RefreshSession(ctx context.Context, refreshToken string) (*model.TokenGrant, error)
	ExchangeCode(ctx context.Context, code string) (*model.TokenGrant, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Outcome is what the render cycle should do after reconciliation.
type Outcome int

const (
	// OutcomeAuthenticated: proceed with the board render.
	OutcomeAuthenticated Outcome = iota
	// OutcomeLoginRequired: present the login form.
	OutcomeLoginRequired
	// OutcomeRedirect: redirect (used to strip a consumed authorization
	// code from the URL so a reload cannot re-trigger the exchange).
	OutcomeRedirect
)

// Result is the decision for one render cycle. Message, when set, is the
// single user-visible line for whatever auth failure occurred.
type Result struct {
	Outcome     Outcome
	RedirectURL string
	Message     string
}

// Reconciler decides the authentication state at the start of every render
// cycle. Precedence: active in-memory session, then persisted token pair,
// then a one-time authorization code, then the login form. It always leaves
// the session in a well-defined state, AuthNone or AuthActive.
type Reconciler struct {
	strategy Strategy
	client   AuthClient
	cookies  *CookieJar
}

// NewReconciler creates a reconciler for the configured strategy.
func NewReconciler(strategy Strategy, client AuthClient, cookies *CookieJar) *Reconciler {
	return &Reconciler{
		strategy: strategy,
		client:   client,
		cookies:  cookies,
	}
}

// Strategy returns the configured auth strategy.
func (rc *Reconciler) Strategy() Strategy {
	return rc.strategy
}

// Reconcile runs the entry-point precedence for the current request. It may
// mutate the session and write or delete persisted cookies; the caller is
// responsible for saving the session afterwards.
func (rc *Reconciler) Reconcile(w http.ResponseWriter, r *http.Request, sess *model.Session) Result {
	if rc.strategy.AllowAnonymous() {
		return Result{Outcome: OutcomeAuthenticated}
	}

	// 1. An already-active session wins; no restoration call is made.
	if sess.Active() {
		return Result{Outcome: OutcomeAuthenticated}
	}

	// 2. A persisted token pair, when the variant supports one.
	if rc.strategy.PersistSession() {
		// Restoration goes through the refresh token; the access half is
		// re-issued by the grant.
		if _, refresh, ok := rc.cookies.Read(r); ok {
			grant, err := rc.client.RefreshSession(r.Context(), refresh)
			if err != nil {
				// Invalid or expired pair: delete it and fall through.
				log.Printf("[AuthReconciler] Persisted session restore failed: %v", err)
				rc.cookies.Clear(w)
				sess.Deactivate()
			} else {
				sess.Activate(*grant)
				// The refresh token rotates on use; persist the new pair.
				rc.cookies.Write(w, grant.AccessToken, grant.RefreshToken)
				return Result{Outcome: OutcomeAuthenticated}
			}
		}
	}

	// 3. A one-time authorization code in the request parameters.
	if rc.strategy.AcceptsCode() {
		if code := r.URL.Query().Get("code"); code != "" {
			grant, err := rc.client.ExchangeCode(r.Context(), code)
			if err != nil {
				sess.Deactivate()
				return Result{
					Outcome: OutcomeLoginRequired,
					Message: fmt.Sprintf("Sign-in failed: %v", err),
				}
			}
			sess.Activate(*grant)
			// Strip the consumed code so a reload does not re-exchange it.
			return Result{Outcome: OutcomeRedirect, RedirectURL: stripCode(r)}
		}
	}

	// 4. Nothing applies: wait for user-submitted credentials.
	sess.Deactivate()
	return Result{Outcome: OutcomeLoginRequired}
}

// Login performs a password sign-in on behalf of the login form. On
// success the session becomes active and, when the variant persists
// sessions, the token pair is written with its 30-day expiry. On failure
// the session stays AuthNone and the single returned error is the
// user-visible message.
func (rc *Reconciler) Login(w http.ResponseWriter, r *http.Request, sess *model.Session, email, password string) error {
	grant, err := rc.client.SignInWithPassword(r.Context(), email, password)
	if err != nil {
		sess.Deactivate()
		return fmt.Errorf("sign-in failed: %w", err)
	}

	sess.Activate(*grant)

	if rc.strategy.PersistSession() {
		rc.cookies.Write(w, grant.AccessToken, grant.RefreshToken)
	}

	log.Printf("[AuthReconciler] Signed in: %s", grant.User.Email)
	return nil
}

// Logout signs the session out and deletes any persisted pair. The
// backend call is best-effort; the local session always ends up AuthNone.
func (rc *Reconciler) Logout(w http.ResponseWriter, r *http.Request, sess *model.Session) {
	if sess.Active() {
		if err := rc.client.SignOut(r.Context(), sess.AccessToken); err != nil {
			log.Printf("[AuthReconciler] Sign-out call failed: %v", err)
		}
	}
	sess.Deactivate()
	rc.cookies.Clear(w)
}

// stripCode rebuilds the request URL without the consumed authorization
// code parameter.
func stripCode(r *http.Request) string {
	u := *r.URL
	q := u.Query()
	q.Del("code")
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}
