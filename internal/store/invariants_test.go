package store

import (
	"context"
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/erazemk/izposoja/internal/model"
)

func checkInvariants(t *rapid.T, items []model.Item) {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !idPattern.MatchString(item.ID) {
			t.Fatalf("id %q does not match %s", item.ID, idPattern)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true

		borrowed := item.BorrowedBy != nil && *item.BorrowedBy != ""
		if item.Available == borrowed {
			t.Fatalf("item %s: available=%v but borrowedBy=%v", item.ID, item.Available, item.BorrowedBy)
		}
	}
}

func TestMemoryStoreInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		s, err := NewMemoryStore(SeedItems()...)
		if err != nil {
			t.Fatalf("NewMemoryStore: %v", err)
		}

		field := rapid.SampledFrom([]string{"", "x", "Tools", "Good"})

		t.Repeat(map[string]func(*rapid.T){
			"create": func(t *rapid.T) {
				n := model.NewItem{
					Name:        field.Draw(t, "name"),
					Description: field.Draw(t, "description"),
					Category:    field.Draw(t, "category"),
					Condition:   field.Draw(t, "condition"),
				}
				before, _ := s.List(ctx)
				item, err := s.Create(ctx, n)
				after, _ := s.List(ctx)

				if n.Validate() != nil {
					if err == nil {
						t.Fatalf("expected validation error for %+v", n)
					}
					if len(after) != len(before) {
						t.Fatalf("rejected create changed the catalog")
					}
					return
				}
				if err != nil {
					t.Fatalf("Create: %v", err)
				}
				for _, b := range before {
					if b.ID == item.ID {
						t.Fatalf("reused id %s", item.ID)
					}
				}
			},
			"borrow": func(t *rapid.T) {
				items, _ := s.List(ctx)
				if len(items) == 0 {
					t.Skip("empty catalog")
				}
				target := rapid.SampledFrom(items).Draw(t, "item")

				_, err := s.RequestBorrow(ctx, target.ID)
				switch {
				case target.Available && err != nil:
					t.Fatalf("borrowing available item %s: %v", target.ID, err)
				case !target.Available && !errors.Is(err, ErrUnavailable):
					t.Fatalf("expected ErrUnavailable for %s, got %v", target.ID, err)
				}

				got, _ := s.Get(ctx, target.ID)
				if got.Available {
					t.Fatalf("item %s still available after borrow request", target.ID)
				}
				if !target.Available && *got.BorrowedBy != *target.BorrowedBy {
					t.Fatalf("rejected request changed borrower of %s", target.ID)
				}
			},
			"": func(t *rapid.T) {
				items, err := s.List(ctx)
				if err != nil {
					t.Fatalf("List: %v", err)
				}
				checkInvariants(t, items)
			},
		})
	})
}
