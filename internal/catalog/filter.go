// Package catalog derives the visible view of the catalog from the user's
// search term, category and availability selections.
package catalog

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erazemk/izposoja/internal/model"
)

// All is the filter value that disables filtering on a dimension.
const All = "all"

// Query holds the browse selections. Availability is compared as a string:
// only "true" and "false" select anything besides All.
type Query struct {
	Search       string
	Category     string
	Availability string
}

// DefaultQuery matches every item.
func DefaultQuery() Query {
	return Query{Category: All, Availability: All}
}

// QueryFromValues reads q, category and available from URL query values.
func QueryFromValues(v url.Values) Query {
	q := Query{
		Search:       v.Get("q"),
		Category:     v.Get("category"),
		Availability: v.Get("available"),
	}
	if q.Category == "" {
		q.Category = All
	}
	if q.Availability == "" {
		q.Availability = All
	}
	return q
}

// Values encodes q as URL query values, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" && q.Category != All {
		v.Set("category", q.Category)
	}
	if q.Availability != "" && q.Availability != All {
		v.Set("available", q.Availability)
	}
	return v
}

// IsDefault reports whether q filters nothing out.
func (q Query) IsDefault() bool {
	return len(q.Values()) == 0
}

// Filter returns the items matching q sorted by name. The input is not modified.
func Filter(items []model.Item, q Query) []model.Item {
	out := make([]model.Item, 0, len(items))
	term := strings.ToLower(q.Search)

	for _, item := range items {
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Name), term) &&
			!strings.Contains(strings.ToLower(item.Description), term) {
			continue
		}
		if q.Category != "" && q.Category != All && item.Category != q.Category {
			continue
		}
		if q.Availability != "" && q.Availability != All && strconv.FormatBool(item.Available) != q.Availability {
			continue
		}
		out = append(out, item)
	}

	SortByName(out)
	return out
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

// SortByName orders items by name using English collation. Items with equal
// names keep their relative order.
func SortByName(items []model.Item) {
	// collate.Collator keeps internal buffers and is not safe for concurrent use.
	collatorMu.Lock()
	defer collatorMu.Unlock()

	slices.SortStableFunc(items, func(a, b model.Item) int {
		return collator.CompareString(a.Name, b.Name)
	})
}

// Categories returns the distinct categories of items in sorted order.
func Categories(items []model.Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	slices.Sort(out)
	return out
}
