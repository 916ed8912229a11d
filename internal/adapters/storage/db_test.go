package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestInitDB verifies the schema is created on an empty database.
func TestInitDB(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='day_state'").Scan(&name)
	if err != nil {
		t.Fatalf("day_state table missing: %v", err)
	}
}

// TestInitDB_Idempotent verifies running InitDB twice is safe.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO day_state (day_key, payload, updated_at) VALUES ('k', '{}', 'now')"); err != nil {
		t.Fatal(err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM day_state").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1 (re-init must not drop data)", count)
	}
}

// TestTimedDB_SatisfiesSQLDB exercises the wrapper against a real database.
func TestTimedDB_SatisfiesSQLDB(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatal(err)
	}
	timed := NewTimedDB(db)

	ctx := t.Context()
	if _, err := timed.ExecContext(ctx, "INSERT INTO day_state (day_key, payload, updated_at) VALUES (?, ?, ?)", "k", "{}", "now"); err != nil {
		t.Fatalf("ExecContext: %v", err)
	}
	var payload string
	if err := timed.QueryRowContext(ctx, "SELECT payload FROM day_state WHERE day_key = ?", "k").Scan(&payload); err != nil {
		t.Fatalf("QueryRowContext: %v", err)
	}
	if payload != "{}" {
		t.Errorf("payload = %q, want {}", payload)
	}
}
