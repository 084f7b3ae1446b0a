package store

import (
	"context"
	"errors"

	"github.com/erazemk/izposoja/internal/model"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrUnavailable = errors.New("item is not available")
)

// Store holds the catalog. Implementations must serialize Create and
// RequestBorrow: both check state before mutating it.
type Store interface {
	// List returns every item in insertion order.
	List(ctx context.Context) ([]model.Item, error)
	// Get returns the item with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Item, error)
	// Create validates and appends a new item, assigning its ID.
	Create(ctx context.Context, n model.NewItem) (*model.Item, error)
	// RequestBorrow lends an available item to the current user.
	RequestBorrow(ctx context.Context, id string) (*model.BorrowResult, error)
	// Photo returns the uploaded photo of an item or ErrNotFound.
	Photo(ctx context.Context, id string) (*model.Photo, error)
}
