package store

import (
	"context"
	"database/sql"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user to the store. The HashedPassword field must
	// already be populated for password accounts; hashing belongs to the
	// auth service. Returns ErrEmailExists or ErrUsernameExists when the
	// corresponding unique constraint is violated, and validation errors
	// from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (normalized) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByResetToken retrieves the user holding the given password-reset
	// token. Returns ErrUserNotFound when no user holds it.
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)

	// UpdatePassword replaces the user's password hash and clears any reset
	// token. Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// SetResetToken stores a password-reset token and its expiry on the user,
	// replacing any previous token. Returns ErrUserNotFound if the user does
	// not exist.
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expires sql.NullTime) error

	// ClearResetToken removes any reset token from the user.
	ClearResetToken(ctx context.Context, id uuid.UUID) error

	// UpdateAvatarURL stores a new avatar URL on the user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error

	// Disable soft-deletes the account: it sets the disabled flag and clears
	// reset token fields. The record is retained. Returns ErrUserNotFound if
	// the user does not exist.
	Disable(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
