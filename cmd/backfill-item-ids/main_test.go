package main

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/store"
)

type mockCategoryStore struct {
	mock.Mock
}

var _ store.CategoryStore = (*mockCategoryStore)(nil)

func (m *mockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryStore) ReplaceItems(ctx context.Context, id uuid.UUID, items []domain.Item) error {
	args := m.Called(ctx, id, items)
	return args.Error(0)
}

func (m *mockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	args := m.Called(tx)
	return args.Get(0).(store.CategoryStore)
}

func TestAssignItemIDs(t *testing.T) {
	existing := uuid.New()
	items := []domain.Item{
		{ID: existing, English: "dog", Romanian: "câine"},
		{English: "cat", Romanian: "pisică"},
		{English: "horse", Romanian: "cal"},
	}

	missing := assignItemIDs(items)

	assert.Equal(t, 2, missing)
	assert.Equal(t, existing, items[0].ID, "existing IDs must survive")
	assert.NotEqual(t, uuid.Nil, items[1].ID)
	assert.NotEqual(t, uuid.Nil, items[2].ID)
	assert.NotEqual(t, items[1].ID, items[2].ID)
}

func TestBackfill(t *testing.T) {
	t.Run("writes only changed categories", func(t *testing.T) {
		categories := new(mockCategoryStore)
		complete := &domain.Category{
			ID:    uuid.New(),
			Name:  "animals",
			Items: []domain.Item{{ID: uuid.New(), English: "dog", Romanian: "câine"}},
		}
		incomplete := &domain.Category{
			ID:    uuid.New(),
			Name:  "colors",
			Items: []domain.Item{{English: "red", Romanian: "roșu"}},
		}

		categories.On("List", mock.Anything).Return([]*domain.Category{complete, incomplete}, nil)
		categories.On("ReplaceItems", mock.Anything, incomplete.ID, mock.MatchedBy(func(items []domain.Item) bool {
			return len(items) == 1 && items[0].ID != uuid.Nil
		})).Return(nil)

		changed, scanned, err := backfill(context.Background(), categories, slog.Default(), false, false)

		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		assert.Equal(t, 2, scanned)
		categories.AssertExpectations(t)
		categories.AssertNotCalled(t, "ReplaceItems", mock.Anything, complete.ID, mock.Anything)
	})

	t.Run("dry run never writes", func(t *testing.T) {
		categories := new(mockCategoryStore)
		incomplete := &domain.Category{
			ID:    uuid.New(),
			Name:  "colors",
			Items: []domain.Item{{English: "red", Romanian: "roșu"}},
		}
		categories.On("List", mock.Anything).Return([]*domain.Category{incomplete}, nil)

		changed, scanned, err := backfill(context.Background(), categories, slog.Default(), true, false)

		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		assert.Equal(t, 1, scanned)
		categories.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
	})
}
