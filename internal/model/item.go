package model

import (
	"fmt"
	"strings"
)

// Item represents a shareable object listed in the catalog.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Owner       string    `json:"owner"`
	Condition   string    `json:"condition"`
	Available   bool      `json:"available"`
	Image       string    `json:"image"`
	BorrowedBy  *string   `json:"borrowedBy"`
	Location    *Location `json:"location,omitempty"`
}

// Location is where an item can be picked up.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Placeholder identities until the catalog knows who is signed in.
const (
	CurrentUser  = "Current User"
	DefaultImage = "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=400&h=300&fit=crop"
)

// IDPrefix is prepended to the zero-padded item sequence number.
const IDPrefix = "itm"

// FormatID returns the item ID for sequence number n, e.g. itm007.
func FormatID(n int64) string {
	return fmt.Sprintf("%s%03d", IDPrefix, n)
}

// PhotoPath is the API path serving an item's uploaded photo.
func PhotoPath(id string) string {
	return "/api/items/" + id + "/image"
}

// ParseID returns the sequence number encoded in an item ID.
func ParseID(id string) (int64, bool) {
	digits, ok := strings.CutPrefix(id, IDPrefix)
	if !ok || len(digits) < 3 {
		return 0, false
	}
	var n int64
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}

// Clone returns a deep copy so callers cannot reach into store state.
func (i Item) Clone() Item {
	if i.BorrowedBy != nil {
		b := *i.BorrowedBy
		i.BorrowedBy = &b
	}
	if i.Location != nil {
		l := *i.Location
		i.Location = &l
	}
	return i
}

// Lend marks the item as borrowed by borrower.
func (i *Item) Lend(borrower string) {
	i.Available = false
	i.BorrowedBy = &borrower
}

// Suggested values for the add form. The server accepts any non-empty value.
var (
	Categories = []string{"Tools", "Kitchen", "Outdoors", "Fitness", "Games", "Electronics", "Books", "Other"}
	Conditions = []string{"Like New", "Excellent", "Very Good", "Good", "Fair", "Poor"}
)
