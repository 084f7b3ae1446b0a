package model

import (
	"strings"
)

// NewItem holds the user-supplied fields for listing an item.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Image       string `json:"image,omitempty"`

	// Photo is an uploaded picture that replaces Image when set.
	Photo *Photo `json:"-"`
}

// Photo is a processed image stored alongside an item.
type Photo struct {
	Data []byte
	MIME string
}

// ValidationError reports which required fields were missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Validate checks that every required field is present.
func (n NewItem) Validate() error {
	var missing []string
	if n.Name == "" {
		missing = append(missing, "name")
	}
	if n.Description == "" {
		missing = append(missing, "description")
	}
	if n.Category == "" {
		missing = append(missing, "category")
	}
	if n.Condition == "" {
		missing = append(missing, "condition")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Item builds the catalog entry for id with the server-assigned defaults.
func (n NewItem) Item(id string) Item {
	image := n.Image
	if image == "" {
		image = DefaultImage
	}
	return Item{
		ID:          id,
		Name:        n.Name,
		Description: n.Description,
		Category:    n.Category,
		Owner:       CurrentUser,
		Condition:   n.Condition,
		Available:   true,
		Image:       image,
	}
}

// BorrowResult acknowledges an approved borrow request.
type BorrowResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Borrow request statuses.
const (
	BorrowStatusApproved = "approved"
)

// ApprovedBorrow is the acknowledgment returned for every granted request.
func ApprovedBorrow() *BorrowResult {
	return &BorrowResult{
		Success: true,
		Status:  BorrowStatusApproved,
		Message: "Request approved!",
	}
}
