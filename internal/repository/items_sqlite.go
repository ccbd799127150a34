package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jsquie/eighty-six/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteItemRepository implements ItemRepository using a local SQLite file.
// Used for development and single-site deployments that do not talk to the
// hosted service. Thread-safe with WAL mode.
type SQLiteItemRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteItemRepository creates a new SQLite item repository.
// dbPath is the path to the SQLite database file (e.g., "./data/board.db")
func NewSQLiteItemRepository(dbPath string) (*SQLiteItemRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createItemTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[SQLiteItemRepository] Initialized with database: %s", dbPath)
	return &SQLiteItemRepository{db: db}, nil
}

// createItemTables creates the board table.
func createItemTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS eighty_sixed (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL,
		item_name TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT (datetime('now')),
		resolved INTEGER NOT NULL DEFAULT 0,
		resolved_at DATETIME,
		resolved_by TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_eighty_sixed_resolved ON eighty_sixed(resolved);
	`
	_, err := db.Exec(query)
	return err
}

// ListUnresolved returns all unresolved items descending by the chosen field.
func (r *SQLiteItemRepository) ListUnresolved(ctx context.Context, sort model.SortField) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// sort comes from model.ParseSortField, so interpolation is safe.
	query := fmt.Sprintf(`
		SELECT id, location, item_name, created_by, created_at, resolved, resolved_at, resolved_by
		FROM eighty_sixed
		WHERE resolved = 0
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

// scanItem reads one row into a model.Item, handling the nullable
// resolution columns.
func scanItem(rows *sql.Rows) (model.Item, error) {
	var item model.Item
	var resolvedAt sql.NullTime
	var resolvedBy sql.NullString

	err := rows.Scan(
		&item.ID,
		&item.Location,
		&item.ItemName,
		&item.CreatedBy,
		&item.CreatedAt,
		&item.Resolved,
		&resolvedAt,
		&resolvedBy,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to scan item: %w", err)
	}

	if resolvedAt.Valid {
		t := resolvedAt.Time
		item.ResolvedAt = &t
	}
	if resolvedBy.Valid {
		item.ResolvedBy = resolvedBy.String
	}

	return item, nil
}

// Resolve marks a single item restocked.
func (r *SQLiteItemRepository) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `UPDATE eighty_sixed SET resolved = 1, resolved_at = ?, resolved_by = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), resolvedBy, id)
	if err != nil {
		return fmt.Errorf("failed to resolve item %d: %w", id, err)
	}
	return nil
}

// Delete hard-deletes a single item.
func (r *SQLiteItemRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `DELETE FROM eighty_sixed WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}

// Stats returns counts about the board.
func (r *SQLiteItemRepository) Stats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make(map[string]interface{})

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM eighty_sixed").Scan(&total); err != nil {
		return nil, err
	}
	stats["total_items"] = total

	var unresolved int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM eighty_sixed WHERE resolved = 0").Scan(&unresolved); err != nil {
		return nil, err
	}
	stats["unresolved_items"] = unresolved

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteItemRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteItemRepository implements ItemRepository
var _ ItemRepository = (*SQLiteItemRepository)(nil)
