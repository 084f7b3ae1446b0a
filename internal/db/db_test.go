package db

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		driver   string
		query    string
		expected string
	}{
		{DriverSQLite, "SELECT * FROM items WHERE id = ?", "SELECT * FROM items WHERE id = ?"},
		{DriverPostgres, "SELECT * FROM items WHERE id = ?", "SELECT * FROM items WHERE id = $1"},
		{DriverPostgres, "UPDATE items SET a = ?, b = ? WHERE id = ?", "UPDATE items SET a = $1, b = $2 WHERE id = $3"},
		{DriverPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		d := &DB{Driver: tt.driver}
		if got := d.Rebind(tt.query); got != tt.expected {
			t.Errorf("Rebind(%s, %q) = %q, want %q", tt.driver, tt.query, got, tt.expected)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	var value int64
	if err := database.QueryRow(`SELECT value FROM counters WHERE name = 'items'`).Scan(&value); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	if value != 0 {
		t.Errorf("expected counter 0, got %d", value)
	}
}

func TestSchemaRejectsInconsistentBorrower(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(
		`INSERT INTO items (seq, id, name, description, category, owner, condition, available, image, borrowed_by)
		 VALUES (1, 'itm001', 'n', 'd', 'c', 'o', 'Good', ?, 'img', NULL)`, false,
	)
	if err == nil {
		t.Error("expected check constraint to reject a borrowed item without borrower")
	}
}
