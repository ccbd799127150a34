package session

import (
	"context"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
)

// Store persists per-UI-session state keyed by session id. This abstraction
// allows swapping between the memory store (development, single instance)
// and Redis (production) without changing business logic.
type Store interface {
	// Get retrieves a session by id. Returns ErrNotFound if absent or expired.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Put stores a session with the given TTL, replacing any existing value.
	Put(ctx context.Context, sess *model.Session, ttl time.Duration) error

	// Delete removes a session by id.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close() error
}

// StoreError is a sentinel error type for store failures.
type StoreError string

func (e StoreError) Error() string { return string(e) }

const (
	// ErrNotFound indicates the session id was not found in the store.
	ErrNotFound StoreError = "session not found"
)
