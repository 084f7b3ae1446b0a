package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/erazemk/izposoja/internal/model"
)

// MemoryStore keeps the catalog in process memory. State is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []model.Item
	index  map[string]int
	photos map[string]model.Photo
	seq    int64
}

// NewMemoryStore returns a store holding copies of the given items.
func NewMemoryStore(seed ...model.Item) (*MemoryStore, error) {
	s := &MemoryStore{
		index:  make(map[string]int),
		photos: make(map[string]model.Photo),
	}
	for _, item := range seed {
		if _, dup := s.index[item.ID]; dup {
			return nil, fmt.Errorf("seeding item %s: duplicate id", item.ID)
		}
		if n, ok := model.ParseID(item.ID); ok && n > s.seq {
			s.seq = n
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item.Clone())
	}
	return s, nil
}

// List returns every item in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	for i, item := range s.items {
		items[i] = item.Clone()
	}
	return items, nil
}

// Get returns an item by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	item := s.items[i].Clone()
	return &item, nil
}

// Create validates and appends a new item.
func (s *MemoryStore) Create(_ context.Context, n model.NewItem) (*model.Item, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	item := n.Item(id)
	if n.Photo != nil {
		item.Image = model.PhotoPath(id)
		s.photos[id] = model.Photo{Data: slices.Clone(n.Photo.Data), MIME: n.Photo.MIME}
	}

	s.index[id] = len(s.items)
	s.items = append(s.items, item)

	created := item.Clone()
	return &created, nil
}

// nextID advances the sequence until it yields an unused ID. Callers must
// hold the write lock.
func (s *MemoryStore) nextID() string {
	for {
		s.seq++
		id := model.FormatID(s.seq)
		if _, taken := s.index[id]; !taken {
			return id
		}
	}
}

// RequestBorrow lends an available item to the current user.
func (s *MemoryStore) RequestBorrow(_ context.Context, id string) (*model.BorrowResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.items[i].Available {
		return nil, ErrUnavailable
	}

	s.items[i].Lend(model.CurrentUser)
	return model.ApprovedBorrow(), nil
}

// Photo returns the uploaded photo of an item.
func (s *MemoryStore) Photo(_ context.Context, id string) (*model.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &model.Photo{Data: slices.Clone(p.Data), MIME: p.MIME}, nil
}
