package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category-specific validation errors
var (
	// ErrCategoryIDEmpty is returned when a category ID is empty or nil.
	ErrCategoryIDEmpty = errors.New("category ID cannot be empty")

	// ErrCategoryNameEmpty is returned when a category name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")

	// ErrCategoryTotalMismatch is returned when a category's declared total
	// does not match the number of items. Enforced at import-write time only;
	// historical documents may still violate it.
	ErrCategoryTotalMismatch = errors.New("category total must match number of items")

	// ErrItemTextEmpty is returned when an item lacks english or romanian text.
	ErrItemTextEmpty = errors.New("item english and romanian text cannot be empty")
)

// Item is a single english/romanian word pair inside a category.
// The ID must be stable across imports so progress records can reference it.
// Items imported before per-item identity existed have a nil ID until the
// backfill command assigns one.
type Item struct {
	ID       uuid.UUID `json:"id"`
	English  string    `json:"english"`
	Romanian string    `json:"romanian"`
}

// Category is a themed collection of vocabulary items. Items are stored as
// an embedded document list, mirroring the import format. Categories are
// written by import tooling and read-only to the learning core.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"category"`
	Image     string    `json:"image,omitempty"`
	Total     int       `json:"total"`
	Items     []Item    `json:"items,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a new Category from an import payload. Total is
// derived from the item list and each item receives a fresh ID when it
// lacks one. Returns an error if validation fails.
func NewCategory(name, image string, items []Item) (*Category, error) {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}

	cat := &Category{
		ID:        uuid.New(),
		Name:      name,
		Image:     image,
		Total:     len(items),
		Items:     items,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	return cat, nil
}

// Validate checks the import-write invariants of a Category.
// Reads tolerate historical documents that fail these checks, so stores
// must only call Validate on create/update paths.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCategoryIDEmpty
	}

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if c.Total != len(c.Items) {
		return ErrCategoryTotalMismatch
	}

	for _, it := range c.Items {
		if it.English == "" || it.Romanian == "" {
			return ErrItemTextEmpty
		}
	}

	return nil
}

// ItemByID returns the item with the given ID, or false when absent.
func (c *Category) ItemByID(id uuid.UUID) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
