package store

import (
	"context"
	"database/sql"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// CategoryStore defines the interface for word category persistence.
type CategoryStore interface {
	// List returns all categories ordered by name. Items are included so
	// callers can serve the full study payload in one round trip.
	List(ctx context.Context) ([]*domain.Category, error)

	// GetByID retrieves a single category with its items.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// GetByName retrieves a single category by its unique name.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// Create saves a new category. Returns ErrCategoryNameExists when a
	// category with the same name already exists.
	Create(ctx context.Context, category *domain.Category) error

	// ReplaceItems overwrites the category's item document and total count.
	// Used by import tooling and the item-ID backfill; order of items is
	// preserved. Returns ErrCategoryNotFound if the category does not exist.
	ReplaceItems(ctx context.Context, id uuid.UUID, items []domain.Item) error

	// WithTx returns a CategoryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
