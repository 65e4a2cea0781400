package database

import (
	"strings"
	"testing"

	"sanctuary/config"
)

func TestBuildSQLiteDSN_PragmaParams(t *testing.T) {
	cfg := &config.Config{
		SQLitePragmasEnabled: true,
		SQLiteBusyTimeoutMS:  5000,
		SQLiteJournalMode:    "WAL",
		SQLiteSynchronous:    "NORMAL",
		SQLiteForeignKeys:    true,
	}

	dsn := buildSQLiteDSN("test.db", cfg)
	if dsn == "test.db" {
		t.Fatalf("expected DSN to include pragma params, got %q", dsn)
	}
	if want := "_pragma=busy_timeout%285000%29"; !strings.Contains(dsn, want) {
		t.Fatalf("expected DSN to contain %q, got %q", want, dsn)
	}
	if want := "_pragma=journal_mode%28WAL%29"; !strings.Contains(dsn, want) {
		t.Fatalf("expected DSN to contain %q, got %q", want, dsn)
	}
	if want := "_pragma=synchronous%28NORMAL%29"; !strings.Contains(dsn, want) {
		t.Fatalf("expected DSN to contain %q, got %q", want, dsn)
	}
	if want := "_pragma=foreign_keys%281%29"; !strings.Contains(dsn, want) {
		t.Fatalf("expected DSN to contain %q, got %q", want, dsn)
	}
}

func TestBuildSQLiteDSN_PreservesExistingQuery(t *testing.T) {
	cfg := &config.Config{
		SQLitePragmasEnabled: true,
		SQLiteForeignKeys:    true,
	}
	dsn := buildSQLiteDSN("test.db?cache=shared", cfg)
	if !strings.Contains(dsn, "cache=shared") {
		t.Fatalf("expected existing query to be preserved, got %q", dsn)
	}
	if !strings.Contains(dsn, "_pragma=") {
		t.Fatalf("expected pragma params, got %q", dsn)
	}
}

func TestBuildSQLiteDSN_Disabled(t *testing.T) {
	cfg := &config.Config{SQLitePragmasEnabled: false}
	if dsn := buildSQLiteDSN("test.db", cfg); dsn != "test.db" {
		t.Fatalf("expected bare path with pragmas disabled, got %q", dsn)
	}
}

func TestSanitizeSQLitePoolConfig(t *testing.T) {
	got := sanitizeSQLitePoolConfig(sqlitePoolConfig{
		maxOpenConns: 0,
		maxIdleConns: 5,
		maxIdleSec:   -1,
		maxLifeSec:   -1,
	})
	if got.maxOpenConns != 1 {
		t.Fatalf("expected maxOpenConns 1, got %d", got.maxOpenConns)
	}
	if got.maxIdleConns != 1 {
		t.Fatalf("expected maxIdleConns clamped to maxOpenConns, got %d", got.maxIdleConns)
	}
	if got.maxIdleSec != 0 || got.maxLifeSec != 0 {
		t.Fatalf("expected non-negative lifetimes, got %d/%d", got.maxIdleSec, got.maxLifeSec)
	}
}

func TestNormalizeSQLiteJournalMode(t *testing.T) {
	if got := normalizeSQLiteJournalMode(" wal "); got != "WAL" {
		t.Fatalf("expected WAL, got %q", got)
	}
	if got := normalizeSQLiteJournalMode("bogus"); got != "" {
		t.Fatalf("expected empty for invalid mode, got %q", got)
	}
}
