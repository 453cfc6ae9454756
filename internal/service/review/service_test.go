package review

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockProgressStore is a testify mock of store.ProgressStore.
type mockProgressStore struct {
	mock.Mock
}

var _ store.ProgressStore = (*mockProgressStore)(nil)

func (m *mockProgressStore) UpsertLearned(ctx context.Context, userID uuid.UUID, item store.LearnedUpsert, now time.Time) error {
	args := m.Called(ctx, userID, item, now)
	return args.Error(0)
}

func (m *mockProgressStore) IncrementDifficult(ctx context.Context, userID, categoryID, itemID uuid.UUID, now time.Time) error {
	args := m.Called(ctx, userID, categoryID, itemID, now)
	return args.Error(0)
}

func (m *mockProgressStore) TouchReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, now time.Time) error {
	args := m.Called(ctx, userID, itemIDs, now)
	return args.Error(0)
}

func (m *mockProgressStore) ListLearned(ctx context.Context, userID, categoryID uuid.UUID, offset, limit int) ([]*domain.WordProgress, error) {
	args := m.Called(ctx, userID, categoryID, offset, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.WordProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) ListCandidates(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.WordProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) CountPrimaryDue(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProgressStore) SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]domain.CategoryLearnedCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressStore) CountDifficult(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return m
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func word(itemID uuid.UUID, source domain.ProgressSource, difficult int, lastSeen time.Time) *domain.WordProgress {
	return &domain.WordProgress{
		ID:             uuid.New(),
		ItemID:         itemID,
		Source:         source,
		Status:         domain.StatusLearned,
		DifficultCount: difficult,
		LastSeenAt:     lastSeen,
	}
}

func TestDueItemsPrimaryOrdering(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	idA, idB, idC := uuid.New(), uuid.New(), uuid.New()

	// B is hardest; A and C tie on difficulty so the one seen longest ago
	// (A) comes first.
	candidates := []*domain.WordProgress{
		word(idA, domain.SourceLearned, 1, base.Add(-48*time.Hour)),
		word(idB, domain.SourceLearned, 3, base),
		word(idC, domain.SourceLearned, 1, base.Add(-1*time.Hour)),
	}

	ps := new(mockProgressStore)
	ps.On("ListCandidates", mock.Anything, mock.Anything).Return(candidates, nil)

	svc := NewReviewService(ps, 0, testLogger())
	got, err := svc.DueItems(context.Background(), uuid.New(), 10)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, idB, got[0].ItemID)
	assert.Equal(t, idA, got[1].ItemID)
	assert.Equal(t, idC, got[2].ItemID)
}

func TestDueItemsFallbackFill(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	primaryID := uuid.New()
	oldKnown, newKnown := uuid.New(), uuid.New()

	candidates := []*domain.WordProgress{
		word(primaryID, domain.SourceLearned, 0, base),
		word(newKnown, domain.SourceKnown, 5, base.Add(-1*time.Hour)),
		word(oldKnown, domain.SourceUnset, 0, base.Add(-72*time.Hour)),
	}

	ps := new(mockProgressStore)
	ps.On("ListCandidates", mock.Anything, mock.Anything).Return(candidates, nil)

	svc := NewReviewService(ps, 0, testLogger())
	got, err := svc.DueItems(context.Background(), uuid.New(), 3)
	require.NoError(t, err)

	// The primary word leads; fallback words follow by least recently
	// seen regardless of their difficulty counters.
	require.Len(t, got, 3)
	assert.Equal(t, primaryID, got[0].ItemID)
	assert.Equal(t, oldKnown, got[1].ItemID)
	assert.Equal(t, newKnown, got[2].ItemID)
}

func TestDueItemsSkipsDuplicateItems(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	shared := uuid.New()
	knownOnly := uuid.New()

	// The same item learned in two categories must appear once.
	candidates := []*domain.WordProgress{
		word(shared, domain.SourceLearned, 2, base),
		word(shared, domain.SourceKnown, 0, base.Add(-100*time.Hour)),
		word(knownOnly, domain.SourceKnown, 0, base.Add(-10*time.Hour)),
	}

	ps := new(mockProgressStore)
	ps.On("ListCandidates", mock.Anything, mock.Anything).Return(candidates, nil)

	svc := NewReviewService(ps, 0, testLogger())
	got, err := svc.DueItems(context.Background(), uuid.New(), 10)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, shared, got[0].ItemID)
	assert.Equal(t, knownOnly, got[1].ItemID)
}

func TestDueItemsLimits(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	candidates := make([]*domain.WordProgress, 0, 30)
	for i := 0; i < 30; i++ {
		candidates = append(candidates, word(uuid.New(), domain.SourceLearned, 0, base.Add(time.Duration(i)*time.Minute)))
	}

	ps := new(mockProgressStore)
	ps.On("ListCandidates", mock.Anything, mock.Anything).Return(candidates, nil)

	svc := NewReviewService(ps, 25, testLogger())

	// Explicit limit wins when under the cap.
	got, err := svc.DueItems(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	// Non-positive limit falls back to the default batch size.
	got, err = svc.DueItems(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultBatchSize)

	// Oversized requests are clamped to the configured maximum.
	got, err = svc.DueItems(context.Background(), uuid.New(), 1000)
	require.NoError(t, err)
	assert.Len(t, got, 25)
}

func TestDueItemsEmpty(t *testing.T) {
	t.Parallel()

	ps := new(mockProgressStore)
	ps.On("ListCandidates", mock.Anything, mock.Anything).Return([]*domain.WordProgress{}, nil)

	svc := NewReviewService(ps, 0, testLogger())
	got, err := svc.DueItems(context.Background(), uuid.New(), 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDueCount(t *testing.T) {
	t.Parallel()

	ps := new(mockProgressStore)
	ps.On("CountPrimaryDue", mock.Anything, mock.Anything).Return(17, nil)

	svc := NewReviewService(ps, 0, testLogger())
	count, err := svc.DueCount(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 17, count)
}

func TestMarkReviewedDedupes(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	idA, idB := uuid.New(), uuid.New()

	ps := new(mockProgressStore)
	ps.On("TouchReviewed", mock.Anything, userID, []uuid.UUID{idA, idB}, mock.Anything).Return(nil)

	svc := NewReviewService(ps, 0, testLogger())
	err := svc.MarkReviewed(context.Background(), userID, []uuid.UUID{idA, uuid.Nil, idB, idA})
	require.NoError(t, err)

	ps.AssertExpectations(t)
}

func TestMarkReviewedEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	ps := new(mockProgressStore)

	svc := NewReviewService(ps, 0, testLogger())
	err := svc.MarkReviewed(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	ps.AssertNotCalled(t, "TouchReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
