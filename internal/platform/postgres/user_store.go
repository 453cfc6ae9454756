package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
)

// userConstraints maps the unique indexes on the users table to their
// entity-specific store errors.
var userConstraints = map[string]error{
	"users_email_key":    store.ErrEmailExists,
	"users_username_key": store.ErrUsernameExists,
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	query := `
		INSERT INTO users (id, username, email, hashed_password, google_id,
			google_email, avatar_url, disabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		nullString(user.Username),
		user.Email,
		nullString(user.HashedPassword),
		nullString(user.GoogleID),
		nullString(user.GoogleEmail),
		nullString(user.AvatarURL),
		user.Disabled,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return MapUniqueViolation(err, userConstraints)
	}

	s.logger.DebugContext(ctx, "user created", slog.String("user_id", user.ID.String()))
	return nil
}

const userColumns = `id, username, email, hashed_password, google_id,
	google_email, avatar_url, disabled, reset_token, reset_expires,
	created_at, updated_at`

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapUserErr(err)
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		return nil, wrapUserErr(err)
	}
	return user, nil
}

// GetByResetToken implements store.UserStore.GetByResetToken
func (s *PostgresUserStore) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, wrapUserErr(err)
	}
	return user, nil
}

// UpdatePassword implements store.UserStore.UpdatePassword
func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := `
		UPDATE users
		SET hashed_password = $2, reset_token = NULL, reset_expires = NULL,
			updated_at = $3
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, hashedPassword, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	return checkUserAffected(result)
}

// SetResetToken implements store.UserStore.SetResetToken
func (s *PostgresUserStore) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires sql.NullTime) error {
	query := `
		UPDATE users
		SET reset_token = $2, reset_expires = $3, updated_at = $4
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, token, expires, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	return checkUserAffected(result)
}

// ClearResetToken implements store.UserStore.ClearResetToken
func (s *PostgresUserStore) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET reset_token = NULL, reset_expires = NULL, updated_at = $2
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	return checkUserAffected(result)
}

// UpdateAvatarURL implements store.UserStore.UpdateAvatarURL
func (s *PostgresUserStore) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = $3 WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, avatarURL, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	return checkUserAffected(result)
}

// Disable implements store.UserStore.Disable
func (s *PostgresUserStore) Disable(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET disabled = TRUE, reset_token = NULL, reset_expires = NULL,
			updated_at = $2
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}
	if err := checkUserAffected(result); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user account disabled", slog.String("user_id", id.String()))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user           domain.User
		username       sql.NullString
		hashedPassword sql.NullString
		googleID       sql.NullString
		googleEmail    sql.NullString
		avatarURL      sql.NullString
		resetToken     sql.NullString
		resetExpires   sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&username,
		&user.Email,
		&hashedPassword,
		&googleID,
		&googleEmail,
		&avatarURL,
		&user.Disabled,
		&resetToken,
		&resetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Username = username.String
	user.HashedPassword = hashedPassword.String
	user.GoogleID = googleID.String
	user.GoogleEmail = googleEmail.String
	user.AvatarURL = avatarURL.String
	user.ResetToken = resetToken.String
	if resetExpires.Valid {
		t := resetExpires.Time
		user.ResetExpires = &t
	}
	return &user, nil
}

func wrapUserErr(err error) error {
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	}
	return mapped
}

func checkUserAffected(result sql.Result) error {
	if err := CheckRowsAffected(result, "user"); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
		}
		return err
	}
	return nil
}

// nullString converts an empty string to a SQL NULL so optional columns
// stay NULL instead of storing empty strings that would trip the partial
// unique indexes.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
