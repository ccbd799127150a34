package model

import "testing"

func TestParseSortField(t *testing.T) {
	valid := []string{"location", "item_name", "created_at", "created_by"}
	for _, s := range valid {
		got, err := ParseSortField(s)
		if err != nil {
			t.Fatalf("ParseSortField(%q) returned error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseSortField(%q) = %q", s, got)
		}
	}
}

func TestParseSortFieldDefault(t *testing.T) {
	got, err := ParseSortField("")
	if err != nil {
		t.Fatalf("ParseSortField(\"\") returned error: %v", err)
	}
	if got != SortByLocation {
		t.Errorf("default sort = %q, want %q", got, SortByLocation)
	}
}

func TestParseSortFieldRejectsUnknown(t *testing.T) {
	for _, s := range []string{"id", "resolved", "location; DROP TABLE items", "LOCATION"} {
		if _, err := ParseSortField(s); err == nil {
			t.Errorf("ParseSortField(%q) accepted an unknown column", s)
		}
	}
}

func TestParseBoardAction(t *testing.T) {
	if _, err := ParseBoardAction("resolve"); err != nil {
		t.Errorf("resolve rejected: %v", err)
	}
	if _, err := ParseBoardAction("delete"); err != nil {
		t.Errorf("delete rejected: %v", err)
	}
	if _, err := ParseBoardAction("restock-all"); err == nil {
		t.Error("unknown action accepted")
	}
}

func TestSessionActivateDeactivate(t *testing.T) {
	sess := &Session{ID: "s1", State: AuthNone}

	grant := TokenGrant{
		User:         User{ID: "u1", Email: "alice@x.com", Name: "Alice"},
		AccessToken:  "at",
		RefreshToken: "rt",
	}
	sess.Activate(grant)

	if !sess.Active() {
		t.Fatal("session not active after Activate")
	}
	if sess.Identity() != "alice@x.com" {
		t.Errorf("Identity() = %q, want alice@x.com", sess.Identity())
	}

	sess.Deactivate()
	if sess.Active() {
		t.Fatal("session still active after Deactivate")
	}
	if sess.AccessToken != "" || sess.RefreshToken != "" || sess.User.Email != "" {
		t.Error("Deactivate left identity or tokens behind")
	}
	if sess.Identity() != "anonymous" {
		t.Errorf("Identity() = %q, want anonymous", sess.Identity())
	}
}
