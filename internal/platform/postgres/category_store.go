package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
)

// categoryConstraints maps the unique indexes on the categories table to
// their entity-specific store errors.
var categoryConstraints = map[string]error{
	"categories_name_key": store.ErrCategoryNameExists,
}

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend. Category items are
// stored as a single JSONB document per category, preserving item order.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// the default logger is used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

const categoryColumns = `id, name, image, total, items, created_at, updated_at`

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, MapError(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapCategoryErr(err)
	}
	return category, nil
}

// GetByName implements store.CategoryStore.GetByName
func (s *PostgresCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	category, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, wrapCategoryErr(err)
	}
	return category, nil
}

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	itemsJSON, err := json.Marshal(category.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal category items: %w", err)
	}

	query := `
		INSERT INTO categories (id, name, image, total, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Image,
		category.Total,
		itemsJSON,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return MapUniqueViolation(err, categoryConstraints)
	}

	s.logger.DebugContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("name", category.Name),
		slog.Int("items", len(category.Items)))
	return nil
}

// ReplaceItems implements store.CategoryStore.ReplaceItems
func (s *PostgresCategoryStore) ReplaceItems(ctx context.Context, id uuid.UUID, items []domain.Item) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal category items: %w", err)
	}

	query := `
		UPDATE categories
		SET items = $2, total = $3, updated_at = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, itemsJSON, len(items), time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "category"); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %v", store.ErrCategoryNotFound, err)
		}
		return err
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		category  domain.Category
		image     sql.NullString
		itemsJSON []byte
	)

	err := row.Scan(
		&category.ID,
		&category.Name,
		&image,
		&category.Total,
		&itemsJSON,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.Image = image.String
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &category.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal category items: %w", err)
		}
	}
	return &category, nil
}

func wrapCategoryErr(err error) error {
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		return fmt.Errorf("%w: %v", store.ErrCategoryNotFound, err)
	}
	return mapped
}
