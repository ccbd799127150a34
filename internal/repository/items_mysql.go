package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
)

// MySQLItemRepository implements ItemRepository using MySQL, for
// deployments that already run the rest of their back office on it.
// The table is managed externally; this repository only reads and mutates.
type MySQLItemRepository struct {
	db *sql.DB
}

// NewMySQLItemRepository creates a new MySQL item repository over an
// existing connection pool.
func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	log.Printf("[MySQLItemRepository] Initialized")
	return &MySQLItemRepository{db: db}
}

// ListUnresolved returns all unresolved items descending by the chosen field.
func (r *MySQLItemRepository) ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error) {
	// sort comes from model.ParseSortField, so interpolation is safe.
	query := fmt.Sprintf(`
		SELECT id, location, item_name, created_by, created_at, resolved, resolved_at, resolved_by
		FROM eighty_sixed
		WHERE resolved = FALSE
		ORDER BY %s DESC`, sort)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// Resolve marks a single item restocked.
func (r *MySQLItemRepository) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	query := `UPDATE eighty_sixed SET resolved = TRUE, resolved_at = ?, resolved_by = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), resolvedBy, id)
	if err != nil {
		return fmt.Errorf("failed to resolve item %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a single item.
func (r *MySQLItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM eighty_sixed WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// Stats returns counts about the board plus connection pool stats.
func (r *MySQLItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM eighty_sixed").Scan(&total); err != nil {
		return nil, err
	}
	stats["total_items"] = total

	var unresolved int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM eighty_sixed WHERE resolved = FALSE").Scan(&unresolved); err != nil {
		return nil, err
	}
	stats["unresolved_items"] = unresolved

	dbStats := r.db.Stats()
	stats["connections"] = map[string]interface{}{
		"open":   dbStats.OpenConnections,
		"in_use": dbStats.InUse,
		"idle":   dbStats.Idle,
	}

	return stats, nil
}

// Close closes the database connection pool.
func (r *MySQLItemRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLItemRepository implements ItemRepository
var _ ItemRepository = (*MySQLItemRepository)(nil)
