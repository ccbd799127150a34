// Package auth decides, on every render cycle, which identity the board is
// operating under. A single configurable Strategy replaces the parallel
// page variants the board grew out of: anonymous access, password login,
// password login with a persisted session, and OAuth.
package auth

import "fmt"

// Mode names an auth strategy, selected by BOARD_AUTH_MODE.
type Mode string

const (
	// ModeNone runs the board without authentication.
	ModeNone Mode = "none"
	// ModePassword requires an email+password sign-in each run.
	ModePassword Mode = "password"
	// ModePersistent is password login plus a persisted token pair, so a
	// session survives a page reload.
	ModePersistent Mode = "persistent"
	// ModeOAuth signs in through an external provider's authorization code.
	ModeOAuth Mode = "oauth"
)

// ParseMode validates a configured auth mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModePassword, ModePersistent, ModeOAuth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown auth mode %q (want none, password, persistent, or oauth)", s)
	}
}

// Strategy describes the capabilities of one auth mode. The reconciler
// consults these instead of branching on the mode name.
type Strategy interface {
	// Mode returns the configured mode name.
	Mode() Mode
	// AllowAnonymous reports whether the board is usable without sign-in.
	AllowAnonymous() bool
	// PersistSession reports whether a token pair is persisted client-side
	// after password sign-in and consulted on later renders.
	PersistSession() bool
	// AcceptsCode reports whether a one-time authorization code in the
	// request may be exchanged for a session.
	AcceptsCode() bool
}

type noneStrategy struct{}

func (noneStrategy) Mode() Mode           { return ModeNone }
func (noneStrategy) AllowAnonymous() bool { return true }
func (noneStrategy) PersistSession() bool { return false }
func (noneStrategy) AcceptsCode() bool    { return false }

type passwordStrategy struct{}

func (passwordStrategy) Mode() Mode           { return ModePassword }
func (passwordStrategy) AllowAnonymous() bool { return false }
func (passwordStrategy) PersistSession() bool { return false }
func (passwordStrategy) AcceptsCode() bool    { return false }

type persistentStrategy struct{}

func (persistentStrategy) Mode() Mode           { return ModePersistent }
func (persistentStrategy) AllowAnonymous() bool { return false }
func (persistentStrategy) PersistSession() bool { return true }
func (persistentStrategy) AcceptsCode() bool    { return false }

type oauthStrategy struct{}

func (oauthStrategy) Mode() Mode           { return ModeOAuth }
func (oauthStrategy) AllowAnonymous() bool { return false }
func (oauthStrategy) PersistSession() bool { return true }
func (oauthStrategy) AcceptsCode() bool    { return true }

// ForMode returns the strategy for a parsed mode.
func ForMode(m Mode) Strategy {
	switch m {
	case ModePassword:
		return passwordStrategy{}
	case ModePersistent:
		return persistentStrategy{}
	case ModeOAuth:
		return oauthStrategy{}
	default:
		return noneStrategy{}
	}
}
