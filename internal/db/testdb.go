package db

import (
	"os"
	"testing"
)

// NewTestDB creates a fresh in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// NewPostgresTestDB connects to the database described by the standard PG*
// environment variables. The test is skipped when PGHOST is unset or the
// server cannot be reached. All catalog tables are emptied before returning.
func NewPostgresTestDB(t *testing.T) *DB {
	t.Helper()

	if os.Getenv("PGHOST") == "" {
		t.Skip("skipping postgres test: PGHOST not set")
	}

	db, err := Open(DriverPostgres, "sslmode=disable")
	if err != nil {
		t.Skipf("skipping postgres test: %v", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}
	if _, err := db.Exec(`TRUNCATE item_photos, items; UPDATE counters SET value = 0`); err != nil {
		db.Close()
		t.Fatalf("resetting test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
