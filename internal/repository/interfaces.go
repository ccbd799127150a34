package repository

import (
	"context"

	"github.com/jsquie/eighty-six/internal/model"
)

// ItemRepository defines data access for the board's single logical table.
type ItemRepository interface {
	// ListUnresolved returns every item with resolved=false, ordered
	// descending by the chosen field. No pagination; the empty set is an
	// empty slice, not an error.
	ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error)

	// Resolve marks a single item restocked: resolved=true, resolved_at=now,
	// resolved_by=resolvedBy. Re-resolving an already-resolved id simply
	// rewrites the same state.
	Resolve(ctx context.Context, id int64, resolvedBy string) error

	// Delete hard-deletes a single item. Irreversible.
	Delete(ctx context.Context, id int64) error

	// Stats returns counts about the board for the status surface.
	Stats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}
