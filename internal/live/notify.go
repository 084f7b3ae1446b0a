package live

import (
	"context"

	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

// Publisher receives catalog change events.
type Publisher interface {
	Publish(Event)
}

type notifying struct {
	store.Store
	pub Publisher
}

// Notifying wraps next so that every successful create or borrow is
// published to pub. Reads pass through untouched.
func Notifying(next store.Store, pub Publisher) store.Store {
	return &notifying{Store: next, pub: pub}
}

func (n *notifying) Create(ctx context.Context, in model.NewItem) (*model.Item, error) {
	item, err := n.Store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	published := item.Clone()
	n.pub.Publish(Event{Type: EventItemCreated, Item: &published})
	return item, nil
}

func (n *notifying) RequestBorrow(ctx context.Context, id string) (*model.BorrowResult, error) {
	res, err := n.Store.RequestBorrow(ctx, id)
	if err != nil {
		return nil, err
	}
	if item, err := n.Store.Get(ctx, id); err == nil {
		n.pub.Publish(Event{Type: EventItemBorrowed, Item: item})
	}
	return res, nil
}
