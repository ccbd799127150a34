package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
)

func newTestRepo(t *testing.T) *SQLiteItemRepository {
	t.Helper()
	repo, err := NewSQLiteItemRepository(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// seed inserts an item directly; item creation is out of scope for the
// service, so tests write rows the way the reporting frontend would.
func seed(t *testing.T, repo *SQLiteItemRepository, location, name, createdBy string, createdAt time.Time) int64 {
	t.Helper()
	res, err := repo.db.Exec(
		`INSERT INTO eighty_sixed (location, item_name, created_by, created_at) VALUES (?, ?, ?, ?)`,
		location, name, createdBy, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get seeded id: %v", err)
	}
	return id
}

func TestListUnresolvedEmptyBoard(t *testing.T) {
	repo := newTestRepo(t)

	items, err := repo.ListUnresolved(context.Background(), model.SortByLocation)
	if err != nil {
		t.Fatalf("empty board returned error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("empty board returned %d items", len(items))
	}
}

func TestListUnresolvedSortsDescending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seed(t, repo, "Bar", "Milk", "carol", base.Add(2*time.Hour))
	seed(t, repo, "Kitchen", "Eggs", "alice", base)
	seed(t, repo, "Patio", "Napkins", "bob", base.Add(time.Hour))

	cases := []struct {
		sort      model.SortField
		firstItem string
	}{
		{model.SortByLocation, "Napkins"},  // Patio > Kitchen > Bar
		{model.SortByItemName, "Napkins"},  // Napkins > Milk > Eggs
		{model.SortByCreatedBy, "Milk"},    // carol > bob > alice
		{model.SortByCreatedAt, "Milk"},    // newest first
	}

	for _, tc := range cases {
		items, err := repo.ListUnresolved(ctx, tc.sort)
		if err != nil {
			t.Fatalf("sort %s failed: %v", tc.sort, err)
		}
		if len(items) != 3 {
			t.Fatalf("sort %s returned %d items, want 3", tc.sort, len(items))
		}
		if items[0].ItemName != tc.firstItem {
			t.Errorf("sort %s: first item = %q, want %q", tc.sort, items[0].ItemName, tc.firstItem)
		}
		for i := 1; i < len(items); i++ {
			if fieldOf(items[i-1], tc.sort) < fieldOf(items[i], tc.sort) {
				t.Errorf("sort %s not descending: %q before %q",
					tc.sort, fieldOf(items[i-1], tc.sort), fieldOf(items[i], tc.sort))
			}
		}
	}
}

// fieldOf returns a comparable string for the sorted column.
func fieldOf(item model.Item, sort model.SortField) string {
	switch sort {
	case model.SortByItemName:
		return item.ItemName
	case model.SortByCreatedAt:
		return item.CreatedAt.UTC().Format(time.RFC3339)
	case model.SortByCreatedBy:
		return item.CreatedBy
	default:
		return item.Location
	}
}

func TestListUnresolvedHandlesTies(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().UTC()

	seed(t, repo, "Bar", "Milk", "alice", now)
	seed(t, repo, "Bar", "Limes", "bob", now)

	items, err := repo.ListUnresolved(context.Background(), model.SortByLocation)
	if err != nil {
		t.Fatalf("tied sort failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("tied sort returned %d items, want 2", len(items))
	}
}

func TestResolveSetsResolutionFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id := seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())

	if err := repo.Resolve(ctx, id, "alice@x.com"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var resolved bool
	var resolvedAt sql.NullTime
	var resolvedBy sql.NullString
	err := repo.db.QueryRow(
		`SELECT resolved, resolved_at, resolved_by FROM eighty_sixed WHERE id = ?`, id,
	).Scan(&resolved, &resolvedAt, &resolvedBy)
	if err != nil {
		t.Fatalf("failed to read back item: %v", err)
	}

	// resolved=true iff both resolution fields are set.
	if !resolved {
		t.Error("item not marked resolved")
	}
	if !resolvedAt.Valid {
		t.Error("resolved_at not set")
	}
	if !resolvedBy.Valid || resolvedBy.String != "alice@x.com" {
		t.Errorf("resolved_by = %v, want alice@x.com", resolvedBy)
	}
}

func TestResolveExcludesFromNextList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	keep := seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())
	gone := seed(t, repo, "Kitchen", "Eggs", "bob", time.Now().UTC())

	if err := repo.Resolve(ctx, gone, "alice@x.com"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for _, sort := range []model.SortField{model.SortByLocation, model.SortByItemName, model.SortByCreatedAt, model.SortByCreatedBy} {
		items, err := repo.ListUnresolved(ctx, sort)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for _, item := range items {
			if item.ID == gone {
				t.Fatalf("resolved item %d still listed under sort %s", gone, sort)
			}
			if item.Resolved {
				t.Fatalf("ListUnresolved returned a resolved item: %+v", item)
			}
		}
		if len(items) != 1 || items[0].ID != keep {
			t.Errorf("sort %s: list = %+v, want only item %d", sort, items, keep)
		}
	}
}

func TestResolveAgainIsHarmless(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id := seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())

	if err := repo.Resolve(ctx, id, "alice@x.com"); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if err := repo.Resolve(ctx, id, "bob@x.com"); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	id := seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM eighty_sixed WHERE id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("deleted item still present")
	}
}

// The board scenario: two unresolved items, sorted by location descending,
// then one gets restocked.
func TestBoardScenario(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())
	eggs := seed(t, repo, "Kitchen", "Eggs", "bob", time.Now().UTC())

	items, err := repo.ListUnresolved(ctx, model.SortByLocation)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].ItemName != "Eggs" || items[1].ItemName != "Milk" {
		t.Fatalf("sorted board = %+v, want [Kitchen/Eggs, Bar/Milk]", items)
	}

	if err := repo.Resolve(ctx, eggs, "alice@x.com"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	items, err = repo.ListUnresolved(ctx, model.SortByLocation)
	if err != nil {
		t.Fatalf("list after resolve failed: %v", err)
	}
	if len(items) != 1 || items[0].ItemName != "Milk" {
		t.Fatalf("board after resolve = %+v, want only Bar/Milk", items)
	}

	var resolvedBy string
	if err := repo.db.QueryRow(`SELECT resolved_by FROM eighty_sixed WHERE id = ?`, eggs).Scan(&resolvedBy); err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if resolvedBy != "alice@x.com" {
		t.Errorf("resolved_by = %q, want alice@x.com", resolvedBy)
	}
}

func TestStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed(t, repo, "Bar", "Milk", "alice", time.Now().UTC())
	id := seed(t, repo, "Kitchen", "Eggs", "bob", time.Now().UTC())
	if err := repo.Resolve(ctx, id, "alice@x.com"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats["total_items"].(int64) != 2 {
		t.Errorf("total_items = %v, want 2", stats["total_items"])
	}
	if stats["unresolved_items"].(int64) != 1 {
		t.Errorf("unresolved_items = %v, want 1", stats["unresolved_items"])
	}
}
