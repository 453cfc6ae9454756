package api

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/service/auth"
	"github.com/bcmenu/benglish-api/internal/service/progress"
	"github.com/bcmenu/benglish-api/internal/service/review"
	"github.com/bcmenu/benglish-api/internal/store"
)

// mockUserStore is a testify mock of store.UserStore.
type mockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *mockUserStore) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires sql.NullTime) error {
	args := m.Called(ctx, id, token, expires)
	return args.Error(0)
}

func (m *mockUserStore) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error {
	args := m.Called(ctx, id, avatarURL)
	return args.Error(0)
}

func (m *mockUserStore) Disable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

// mockJWTService is a testify mock of auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockCategoryStore is a testify mock of store.CategoryStore.
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

// mockProgressService is a testify mock of progress.ProgressService.
type mockProgressService struct {
	mock.Mock
}

var _ progress.ProgressService = (*mockProgressService)(nil)

func (m *mockProgressService) MarkLearnedBatch(ctx context.Context, userID, categoryID uuid.UUID, items []progress.LearnItem, source domain.ProgressSource) (*progress.BatchResult, error) {
	args := m.Called(ctx, userID, categoryID, items, source)
	if v := args.Get(0); v != nil {
		return v.(*progress.BatchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) MarkWrongAnswer(ctx context.Context, userID, categoryID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, categoryID, itemID)
	return args.Error(0)
}

func (m *mockProgressService) ListLearned(ctx context.Context, userID, categoryID uuid.UUID, skip, limit int) ([]*domain.WordProgress, error) {
	args := m.Called(ctx, userID, categoryID, skip, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.WordProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]domain.CategoryLearnedCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) DifficultCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockProgressService) ActivityDays(ctx context.Context, userID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) DailyProgress(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyProgress, error) {
	args := m.Called(ctx, userID, date)
	if v := args.Get(0); v != nil {
		return v.(*domain.DailyProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProgressService) IncrementDaily(ctx context.Context, userID uuid.UUID, date string, deltas domain.DailyDeltas) error {
	args := m.Called(ctx, userID, date, deltas)
	return args.Error(0)
}

// mockReviewService is a testify mock of review.ReviewService.
type mockReviewService struct {
	mock.Mock
}

var _ review.ReviewService = (*mockReviewService)(nil)

func (m *mockReviewService) DueItems(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WordProgress, error) {
	args := m.Called(ctx, userID, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.WordProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewService) DueCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockReviewService) MarkReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, itemIDs)
	return args.Error(0)
}

// mockMailer is a testify mock of mailer.Mailer.
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, toEmail, webLink, appLink string) error {
	args := m.Called(ctx, toEmail, webLink, appLink)
	return args.Error(0)
}

// mockUploader is a testify mock of media.Uploader.
type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockUploader) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
