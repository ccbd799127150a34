package auth

import (
	"net/http"
	"time"
)

// Cookie names for the persisted token pair.
const (
	AccessCookieName  = "sb-access-token"
	RefreshCookieName = "sb-refresh-token"
)

// CookieJar reads and writes the persisted access/refresh token pair that
// lets a session survive a page reload without re-entering credentials.
type CookieJar struct {
	ttl    time.Duration
	secure bool
}

// NewCookieJar creates a cookie jar. ttl is the persisted pair's lifetime,
// ~30 days from login.
func NewCookieJar(ttl time.Duration, secure bool) *CookieJar {
	return &CookieJar{ttl: ttl, secure: secure}
}

// Read returns the persisted token pair, if both halves are present.
func (j *CookieJar) Read(r *http.Request) (access, refresh string, ok bool) {
	ac, err := r.Cookie(AccessCookieName)
	if err != nil || ac.Value == "" {
		return "", "", false
	}
	rc, err := r.Cookie(RefreshCookieName)
	if err != nil || rc.Value == "" {
		return "", "", false
	}
	return ac.Value, rc.Value, true
}

// Write persists a token pair with the configured expiry.
func (j *CookieJar) Write(w http.ResponseWriter, access, refresh string) {
	expires := time.Now().Add(j.ttl)
	j.set(w, AccessCookieName, access, expires, int(j.ttl.Seconds()))
	j.set(w, RefreshCookieName, refresh, expires, int(j.ttl.Seconds()))
}

// Clear deletes the persisted pair. Called on sign-out and whenever
// restoration from a persisted pair fails.
func (j *CookieJar) Clear(w http.ResponseWriter) {
	past := time.Unix(0, 0)
	j.set(w, AccessCookieName, "", past, -1)
	j.set(w, RefreshCookieName, "", past, -1)
}

func (j *CookieJar) set(w http.ResponseWriter, name, value string, expires time.Time, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
