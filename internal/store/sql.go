package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/izposoja/internal/db"
	"github.com/erazemk/izposoja/internal/model"
)

// SQLStore keeps the catalog in a SQLite or PostgreSQL database.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore returns a store backed by an opened database with the schema applied.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

const itemColumns = `id, name, description, category, owner, condition, available, image, borrowed_by, lat, lng, address`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var borrowedBy, address sql.NullString
	var lat, lng sql.NullFloat64
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Category, &item.Owner,
		&item.Condition, &item.Available, &item.Image, &borrowedBy, &lat, &lng, &address); err != nil {
		return nil, err
	}
	if borrowedBy.Valid {
		item.BorrowedBy = &borrowedBy.String
	}
	if address.Valid {
		item.Location = &model.Location{Lat: lat.Float64, Lng: lng.Float64, Address: address.String}
	}
	return item, nil
}

// Seed inserts the given items if the catalog is empty and advances the ID
// counter past the largest seeded sequence number.
func (s *SQLStore) Seed(ctx context.Context, items []model.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Take the counter row first so concurrent seeders queue behind it.
	var counter int64
	err = tx.QueryRowContext(ctx,
		`UPDATE counters SET value = value WHERE name = 'items' RETURNING value`,
	).Scan(&counter)
	if err != nil {
		return fmt.Errorf("locking item counter: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return fmt.Errorf("counting items: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, item := range items {
		seq, ok := model.ParseID(item.ID)
		if !ok {
			return fmt.Errorf("seeding item %q: malformed id", item.ID)
		}
		if err := s.insertItem(ctx, tx, seq, item); err != nil {
			return fmt.Errorf("seeding item %s: %w", item.ID, err)
		}
		counter = max(counter, seq)
	}

	if _, err := tx.ExecContext(ctx,
		s.db.Rebind(`UPDATE counters SET value = ? WHERE name = 'items'`), counter,
	); err != nil {
		return fmt.Errorf("advancing item counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

func (s *SQLStore) insertItem(ctx context.Context, tx *sql.Tx, seq int64, item model.Item) error {
	var lat, lng sql.NullFloat64
	var address sql.NullString
	if item.Location != nil {
		lat = sql.NullFloat64{Float64: item.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: item.Location.Lng, Valid: true}
		address = sql.NullString{String: item.Location.Address, Valid: true}
	}

	_, err := tx.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO items (seq, `+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		seq, item.ID, item.Name, item.Description, item.Category, item.Owner,
		item.Condition, item.Available, item.Image, item.BorrowedBy, lat, lng, address,
	)
	return err
}

// List returns every item in insertion order.
func (s *SQLStore) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Get returns an item by ID.
func (s *SQLStore) Get(ctx context.Context, id string) (*model.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT `+itemColumns+` FROM items WHERE id = ?`), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// Create validates and inserts a new item. The counter update and insert run
// in one transaction, so concurrent creates never share an ID.
func (s *SQLStore) Create(ctx context.Context, n model.NewItem) (*model.Item, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	var seq int64
	for {
		err := tx.QueryRowContext(ctx,
			`UPDATE counters SET value = value + 1 WHERE name = 'items' RETURNING value`,
		).Scan(&seq)
		if err != nil {
			return nil, fmt.Errorf("advancing item counter: %w", err)
		}

		id = model.FormatID(seq)
		var taken int
		if err := tx.QueryRowContext(ctx,
			s.db.Rebind(`SELECT COUNT(*) FROM items WHERE id = ? OR seq = ?`), id, seq,
		).Scan(&taken); err != nil {
			return nil, fmt.Errorf("checking item id: %w", err)
		}
		if taken == 0 {
			break
		}
	}

	item := n.Item(id)
	if n.Photo != nil {
		item.Image = model.PhotoPath(id)
	}

	if err := s.insertItem(ctx, tx, seq, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	if n.Photo != nil {
		if _, err := tx.ExecContext(ctx,
			s.db.Rebind(`INSERT INTO item_photos (item_id, data, mime) VALUES (?, ?, ?)`),
			id, n.Photo.Data, n.Photo.MIME,
		); err != nil {
			return nil, fmt.Errorf("storing item photo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}
	return &item, nil
}

// RequestBorrow lends an available item to the current user. The
// availability check and the update are a single statement.
func (s *SQLStore) RequestBorrow(ctx context.Context, id string) (*model.BorrowResult, error) {
	result, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE items SET available = ?, borrowed_by = ? WHERE id = ? AND available = ?`),
		false, model.CurrentUser, id, true,
	)
	if err != nil {
		return nil, fmt.Errorf("borrowing item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("borrowing item: %w", err)
	}
	if affected == 1 {
		return model.ApprovedBorrow(), nil
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

// Photo returns the uploaded photo of an item.
func (s *SQLStore) Photo(ctx context.Context, id string) (*model.Photo, error) {
	p := &model.Photo{}
	err := s.db.QueryRowContext(ctx,
		s.db.Rebind(`SELECT data, mime FROM item_photos WHERE item_id = ?`), id,
	).Scan(&p.Data, &p.MIME)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item photo: %w", err)
	}
	return p, nil
}
