package db

import (
	"fmt"
)

// schema is the full database schema. Types are chosen to be valid for both
// SQLite and PostgreSQL.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    seq         BIGINT PRIMARY KEY,
    id          TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    category    TEXT NOT NULL,
    owner       TEXT NOT NULL,
    condition   TEXT NOT NULL,
    available   BOOLEAN NOT NULL DEFAULT TRUE,
    image       TEXT NOT NULL,
    borrowed_by TEXT,
    lat         DOUBLE PRECISION,
    lng         DOUBLE PRECISION,
    address     TEXT,
    CHECK ((available AND borrowed_by IS NULL) OR (NOT available AND borrowed_by IS NOT NULL AND borrowed_by <> ''))
);

CREATE TABLE IF NOT EXISTS item_photos (
    item_id TEXT PRIMARY KEY REFERENCES items(id),
    data    BYTEA NOT NULL,
    mime    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS counters (
    name  TEXT PRIMARY KEY,
    value BIGINT NOT NULL
);

INSERT INTO counters (name, value) VALUES ('items', 0) ON CONFLICT (name) DO NOTHING;
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(d *DB) error {
	if _, err := d.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
