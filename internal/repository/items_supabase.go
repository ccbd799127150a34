package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
	"github.com/jsquie/eighty-six/internal/supabase"
)

// SupabaseItemRepository implements ItemRepository against the hosted
// service's REST surface. This is the default backend for the board.
type SupabaseItemRepository struct {
	client *supabase.Client
	table  string
}

// NewSupabaseItemRepository creates an item repository over an existing
// client handle. The client is shared across the process; this type adds
// only the table binding.
func NewSupabaseItemRepository(client *supabase.Client, table string) *SupabaseItemRepository {
	log.Printf("[SupabaseItemRepository] Initialized with table: %s", table)
	return &SupabaseItemRepository{client: client, table: table}
}

// ListUnresolved returns all unresolved items descending by the chosen field.
func (r *SupabaseItemRepository) ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error) {
	var items []model.Item
	err := r.client.From(r.table).
		Eq("resolved", false).
		OrderDesc(string(sort)).
		Get(ctx, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved items: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Resolve marks a single item restocked.
func (r *SupabaseItemRepository) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	err := r.client.From(r.table).
		Eq("id", id).
		Patch(ctx, map[string]interface{}{
			"resolved":    true,
			"resolved_at": time.Now().UTC().Format(time.RFC3339),
			"resolved_by": resolvedBy,
		})
	if err != nil {
		return fmt.Errorf("failed to resolve item %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a single item.
func (r *SupabaseItemRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.From(r.table).Eq("id", id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// Stats returns total and unresolved item counts.
func (r *SupabaseItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	total, err := r.client.From(r.table).Count(ctx)
	if err != nil {
		return nil, err
	}
	stats["total_items"] = total

	unresolved, err := r.client.From(r.table).Eq("resolved", false).Count(ctx)
	if err != nil {
		return nil, err
	}
	stats["unresolved_items"] = unresolved

	return stats, nil
}

// Close is a no-op: the underlying client is process-lifetime scoped.
func (r *SupabaseItemRepository) Close() error {
	return nil
}

// Ensure SupabaseItemRepository implements ItemRepository
var _ ItemRepository = (*SupabaseItemRepository)(nil)
