package catalog_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/erazemk/izposoja/internal/catalog"
	"github.com/erazemk/izposoja/internal/model"
	"github.com/erazemk/izposoja/internal/store"
)

func names(items []model.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestFilterDefaultReturnsAllSorted(t *testing.T) {
	items := store.SeedItems()

	got := catalog.Filter(items, catalog.Query{Category: "all", Availability: "all"})

	assert.Equal(t, []string{
		"Bicycle",
		"Blender",
		"Board Game: Settlers of Catan",
		"Camping Tent",
		"Cordless Drill",
		"Crock Pot",
		"Ladder",
		"Yoga Mat",
	}, names(got))
}

func TestFilterSearch(t *testing.T) {
	items := store.SeedItems()

	got := catalog.Filter(items, catalog.Query{Search: "drill", Category: "all", Availability: "all"})
	require.Len(t, got, 1)
	assert.Equal(t, "Cordless Drill", got[0].Name)

	// Matches the description as well as the name, ignoring case.
	got = catalog.Filter(items, catalog.Query{Search: "PERFECT", Category: "all", Availability: "all"})
	assert.Equal(t, []string{"Bicycle", "Cordless Drill", "Crock Pot", "Yoga Mat"}, names(got))

	got = catalog.Filter(items, catalog.Query{Search: "submarine", Category: "all", Availability: "all"})
	assert.Empty(t, got)
}

func TestFilterCategory(t *testing.T) {
	items := store.SeedItems()

	got := catalog.Filter(items, catalog.Query{Category: "Kitchen", Availability: "all"})
	require.Len(t, got, 2)
	for _, item := range got {
		assert.Equal(t, "Kitchen", item.Category)
	}

	// Category matching is case-sensitive.
	assert.Empty(t, catalog.Filter(items, catalog.Query{Category: "kitchen", Availability: "all"}))
}

func TestFilterAvailability(t *testing.T) {
	items := store.SeedItems()

	borrowed := catalog.Filter(items, catalog.Query{Category: "all", Availability: "false"})
	assert.Equal(t, []string{"Bicycle", "Crock Pot"}, names(borrowed))
	for _, item := range borrowed {
		assert.False(t, item.Available)
	}

	available := catalog.Filter(items, catalog.Query{Category: "all", Availability: "true"})
	assert.Len(t, available, 6)

	// Only the exact strings "true" and "false" select items.
	for _, v := range []string{"TRUE", "1", "yes", "False"} {
		assert.Empty(t, catalog.Filter(items, catalog.Query{Category: "all", Availability: v}), v)
	}
}

func TestFilterCombined(t *testing.T) {
	items := store.SeedItems()

	got := catalog.Filter(items, catalog.Query{Search: "weekend", Category: "Outdoors", Availability: "true"})
	assert.Equal(t, []string{"Camping Tent"}, names(got))
}

func TestFilterEmptySelectionsMatchAll(t *testing.T) {
	items := store.SeedItems()
	assert.Len(t, catalog.Filter(items, catalog.Query{}), len(items))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	items := store.SeedItems()
	before := names(items)

	catalog.Filter(items, catalog.DefaultQuery())

	assert.Equal(t, before, names(items))
}

func TestSortByNameUsesCollation(t *testing.T) {
	items := []model.Item{{Name: "banana"}, {Name: "Cherry"}, {Name: "apple"}, {Name: "Éclair"}, {Name: "Banana"}}

	catalog.SortByName(items)

	got := names(items)
	assert.Equal(t, "apple", got[0])
	assert.Equal(t, "Cherry", got[3])
	assert.Equal(t, "Éclair", got[4])
}

func TestSortByNameIsStable(t *testing.T) {
	items := []model.Item{{ID: "itm002", Name: "Ladder"}, {ID: "itm001", Name: "Ladder"}, {ID: "itm003", Name: "Drill"}}

	catalog.SortByName(items)

	assert.Equal(t, "itm003", items[0].ID)
	assert.Equal(t, "itm002", items[1].ID)
	assert.Equal(t, "itm001", items[2].ID)
}

func TestQueryFromValues(t *testing.T) {
	q := catalog.QueryFromValues(url.Values{})
	assert.Equal(t, catalog.DefaultQuery(), q)
	assert.True(t, q.IsDefault())

	q = catalog.QueryFromValues(url.Values{"q": {"tent"}, "category": {"Outdoors"}, "available": {"true"}})
	assert.Equal(t, catalog.Query{Search: "tent", Category: "Outdoors", Availability: "true"}, q)
	assert.False(t, q.IsDefault())
	assert.Equal(t, "available=true&category=Outdoors&q=tent", q.Values().Encode())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Fitness", "Games", "Kitchen", "Outdoors", "Tools"}, catalog.Categories(store.SeedItems()))
}

func genItem() *rapid.Generator[model.Item] {
	return rapid.Custom(func(t *rapid.T) model.Item {
		return model.Item{
			ID:          rapid.StringMatching(`itm\d{3}`).Draw(t, "id"),
			Name:        rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "name"),
			Description: rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "description"),
			Category:    rapid.SampledFrom([]string{"Tools", "Kitchen", "Outdoors"}).Draw(t, "category"),
			Available:   rapid.Bool().Draw(t, "available"),
		}
	})
}

func TestFilterProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(genItem()).Draw(t, "items")
		q := catalog.Query{
			Search:       rapid.StringMatching(`[a-z]{0,2}`).Draw(t, "search"),
			Category:     rapid.SampledFrom([]string{"all", "Tools", "Kitchen"}).Draw(t, "category"),
			Availability: rapid.SampledFrom([]string{"all", "true", "false"}).Draw(t, "available"),
		}

		got := catalog.Filter(items, q)

		if len(got) > len(items) {
			t.Fatalf("filter grew the result: %d > %d", len(got), len(items))
		}
		for _, item := range got {
			term := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(item.Name), term) && !strings.Contains(strings.ToLower(item.Description), term) {
				t.Fatalf("item %q does not contain %q", item.Name, q.Search)
			}
			if q.Category != "all" && item.Category != q.Category {
				t.Fatalf("item %q has category %q, want %q", item.Name, item.Category, q.Category)
			}
			if q.Availability == "true" && !item.Available || q.Availability == "false" && item.Available {
				t.Fatalf("item %q availability %v does not match %q", item.Name, item.Available, q.Availability)
			}
		}

		// Filtering an already filtered view changes nothing.
		again := catalog.Filter(got, q)
		if strings.Join(names(again), "\x00") != strings.Join(names(got), "\x00") {
			t.Fatalf("filter is not idempotent")
		}

		// The default query keeps every item.
		if all := catalog.Filter(items, catalog.DefaultQuery()); len(all) != len(items) {
			t.Fatalf("default query dropped items: %d of %d", len(all), len(items))
		}
	})
}
