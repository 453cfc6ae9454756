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

// PostgresDailyProgressStore implements the store.DailyProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresDailyProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDailyProgressStore creates a new PostgreSQL implementation of
// the DailyProgressStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller. If
// logger is nil, the default logger is used.
func NewPostgresDailyProgressStore(db store.DBTX, logger *slog.Logger) *PostgresDailyProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDailyProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "daily_progress_store")),
	}
}

// Ensure PostgresDailyProgressStore implements store.DailyProgressStore interface
var _ store.DailyProgressStore = (*PostgresDailyProgressStore)(nil)

// WithTx implements store.DailyProgressStore.WithTx
func (s *PostgresDailyProgressStore) WithTx(tx *sql.Tx) store.DailyProgressStore {
	return &PostgresDailyProgressStore{db: tx, logger: s.logger}
}

// Increment implements store.DailyProgressStore.Increment
//
// The upsert adds the deltas to whatever the row already holds, so two
// concurrent increments for the same day never lose counts.
func (s *PostgresDailyProgressStore) Increment(ctx context.Context, userID uuid.UUID, date string, deltas domain.DailyDeltas) (*domain.DailyProgress, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO daily_progress (id, user_id, date, learned, practiced,
			reviewed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, date) DO UPDATE SET
			learned = daily_progress.learned + EXCLUDED.learned,
			practiced = daily_progress.practiced + EXCLUDED.practiced,
			reviewed = daily_progress.reviewed + EXCLUDED.reviewed,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, date, learned, practiced, reviewed, created_at, updated_at`

	row := s.db.QueryRowContext(ctx, query,
		uuid.New(), userID, date,
		deltas.Learned, deltas.Practiced, deltas.Reviewed,
		now,
	)

	progress, err := scanDailyProgress(row)
	if err != nil {
		return nil, MapError(err)
	}
	return progress, nil
}

// Get implements store.DailyProgressStore.Get
func (s *PostgresDailyProgressStore) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyProgress, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	query := `
		SELECT id, user_id, date, learned, practiced, reviewed, created_at, updated_at
		FROM daily_progress
		WHERE user_id = $1 AND date = $2`

	progress, err := scanDailyProgress(s.db.QueryRowContext(ctx, query, userID, date))
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, fmt.Errorf("%w: %v", store.ErrDailyProgressNotFound, err)
		}
		return nil, mapped
	}
	return progress, nil
}

// ListActiveDays implements store.DailyProgressStore.ListActiveDays
func (s *PostgresDailyProgressStore) ListActiveDays(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `
		SELECT date
		FROM daily_progress
		WHERE user_id = $1 AND (learned > 0 OR practiced > 0 OR reviewed > 0)
		ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, MapError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return days, nil
}

func scanDailyProgress(row rowScanner) (*domain.DailyProgress, error) {
	var p domain.DailyProgress
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Date,
		&p.Learned,
		&p.Practiced,
		&p.Reviewed,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
