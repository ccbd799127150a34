package config

import (
	"os"
	"strings"
	"testing"
)

// clearEnv unsets every variable the config reads so tests are hermetic.
// t.Setenv registers the restore; the variable must then be truly unset,
// because envconfig treats set-but-empty as a value, not as a default.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SUPABASE_URL", "SUPABASE_KEY", "SUPABASE_TABLE",
		"BOARD_AUTH_MODE", "BOARD_DB_TYPE", "BOARD_COOKIE_TTL",
		"SESSION_STORE_TYPE", "SERVER_HOST", "SERVER_PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFailsWithoutSupabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_KEY", "service-key")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without SUPABASE_URL")
	}
	if !strings.Contains(err.Error(), "SUPABASE_URL") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadFailsWithoutSupabaseKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")

	_, err := Load()
	if err == nil {
		t.Fatal("Load succeeded without SUPABASE_KEY")
	}
	if !strings.Contains(err.Error(), "SUPABASE_KEY") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadSucceedsWithBothSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Supabase.Table != "eighty_sixed" {
		t.Errorf("default table = %q", cfg.Supabase.Table)
	}
	if cfg.Board.AuthMode != "none" {
		t.Errorf("default auth mode = %q", cfg.Board.AuthMode)
	}
	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Errorf("default address = %q", cfg.Server.Address())
	}
	if cfg.Board.CookieTTL.Hours() != 720 {
		t.Errorf("default cookie TTL = %v, want 720h", cfg.Board.CookieTTL)
	}
}

func TestFullyLocalBoardNeedsNoSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_DB_TYPE", "sqlite")
	t.Setenv("BOARD_AUTH_MODE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed for local board: %v", err)
	}
	if cfg.NeedsSupabase() {
		t.Error("local board reported needing the hosted service")
	}
}

func TestAuthModeAloneRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOARD_DB_TYPE", "sqlite")
	t.Setenv("BOARD_AUTH_MODE", "password")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded with auth enabled and no credentials")
	}
}
