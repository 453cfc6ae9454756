package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/service/auth"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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
	return m
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func passthroughHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		require.True(t, ok)
		assert.Equal(t, wantUserID, userID)

		user, ok := GetUser(r)
		require.True(t, ok)
		assert.Equal(t, wantUserID, user.ID)

		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateSuccess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtSvc := new(mockJWTService)
	jwtSvc.On("ValidateToken", mock.Anything, "good-token").
		Return(&auth.Claims{UserID: userID, TokenType: "access"}, nil)

	userStore := new(mockUserStore)
	userStore.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Email: "user@example.com"}, nil)

	mw := NewAuthMiddleware(jwtSvc, userStore)
	rr := httptest.NewRecorder()
	mw.Authenticate(passthroughHandler(t, userID)).ServeHTTP(rr, authedRequest("good-token"))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(new(mockJWTService), new(mockUserStore))
	rr := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, authedRequest(""))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateBadFormat(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(new(mockJWTService), new(mockUserStore))
	rr := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	jwtSvc := new(mockJWTService)
	jwtSvc.On("ValidateToken", mock.Anything, "stale").Return(nil, auth.ErrExpiredToken)

	mw := NewAuthMiddleware(jwtSvc, new(mockUserStore))
	rr := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, authedRequest("stale"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Token expired")
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtSvc := new(mockJWTService)
	jwtSvc.On("ValidateToken", mock.Anything, "good-token").
		Return(&auth.Claims{UserID: userID, TokenType: "access"}, nil)

	userStore := new(mockUserStore)
	userStore.On("GetByID", mock.Anything, userID).
		Return(&domain.User{ID: userID, Email: "user@example.com", Disabled: true}, nil)

	mw := NewAuthMiddleware(jwtSvc, userStore)
	rr := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, authedRequest("good-token"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtSvc := new(mockJWTService)
	jwtSvc.On("ValidateToken", mock.Anything, "good-token").
		Return(&auth.Claims{UserID: userID, TokenType: "access"}, nil)

	userStore := new(mockUserStore)
	userStore.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

	mw := NewAuthMiddleware(jwtSvc, userStore)
	rr := httptest.NewRecorder()
	mw.Authenticate(http.NotFoundHandler()).ServeHTTP(rr, authedRequest("good-token"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
