package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// the default logger is used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{db: tx, logger: s.logger}
}

// UpsertLearned implements store.ProgressStore.UpsertLearned
//
// The insert path stamps the word text and learned-at time and starts the
// correct streak at 1. The conflict path leaves those untouched and instead
// refreshes status, source and last-seen time while incrementing the streak.
// Both paths run as one atomic statement.
func (s *PostgresProgressStore) UpsertLearned(ctx context.Context, userID uuid.UUID, item store.LearnedUpsert, now time.Time) error {
	query := `
		INSERT INTO word_progress (id, user_id, category_id, item_id, english,
			romanian, status, source, correct_streak, difficult_count,
			learned_at, last_seen_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, 0, $9, $9, $9, $9)
		ON CONFLICT (user_id, category_id, item_id) DO UPDATE SET
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			last_seen_at = EXCLUDED.last_seen_at,
			correct_streak = word_progress.correct_streak + 1,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		userID,
		item.CategoryID,
		item.ItemID,
		item.English,
		item.Romanian,
		domain.StatusLearned,
		string(item.Source),
		now,
	)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// IncrementDifficult implements store.ProgressStore.IncrementDifficult
//
// Only difficult_count and updated_at move. last_seen_at stays put so a
// wrong answer does not push the word down the review ordering, which
// prefers the least recently seen candidates.
func (s *PostgresProgressStore) IncrementDifficult(ctx context.Context, userID, categoryID, itemID uuid.UUID, now time.Time) error {
	query := `
		UPDATE word_progress
		SET difficult_count = difficult_count + 1, updated_at = $4
		WHERE user_id = $1 AND category_id = $2 AND item_id = $3`

	// Zero affected rows means the word was never learned; that is not an
	// error for this operation.
	_, err := s.db.ExecContext(ctx, query, userID, categoryID, itemID, now)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// TouchReviewed implements store.ProgressStore.TouchReviewed
//
// The placeholder list is built by hand because the stdlib driver interface
// has no portable array binding for a uuid slice.
func (s *PostgresProgressStore) TouchReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, now time.Time) error {
	if len(itemIDs) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(itemIDs))
	args := make([]any, 0, len(itemIDs)+2)
	args = append(args, userID, now)
	for i, id := range itemIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		UPDATE word_progress
		SET last_seen_at = $2, updated_at = $2
		WHERE user_id = $1 AND item_id IN (%s)`,
		strings.Join(placeholders, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}

	if affected, err := result.RowsAffected(); err == nil {
		s.logger.DebugContext(ctx, "review recorded",
			slog.String("user_id", userID.String()),
			slog.Int("requested", len(itemIDs)),
			slog.Int64("updated", affected))
	}
	return nil
}

const progressColumns = `id, user_id, category_id, item_id, english, romanian,
	status, source, correct_streak, difficult_count, learned_at, last_seen_at,
	created_at, updated_at`

// ListLearned implements store.ProgressStore.ListLearned
func (s *PostgresProgressStore) ListLearned(ctx context.Context, userID, categoryID uuid.UUID, offset, limit int) ([]*domain.WordProgress, error) {
	if categoryID != uuid.Nil {
		query := `SELECT ` + progressColumns + `
			FROM word_progress
			WHERE user_id = $1 AND status = $2 AND category_id = $3
			ORDER BY learned_at DESC
			OFFSET $4 LIMIT $5`

		return s.queryProgress(ctx, query, userID, domain.StatusLearned, categoryID, offset, limit)
	}

	query := `SELECT ` + progressColumns + `
		FROM word_progress
		WHERE user_id = $1 AND status = $2
		ORDER BY learned_at DESC
		OFFSET $3 LIMIT $4`

	return s.queryProgress(ctx, query, userID, domain.StatusLearned, offset, limit)
}

// ListCandidates implements store.ProgressStore.ListCandidates
func (s *PostgresProgressStore) ListCandidates(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error) {
	query := `SELECT ` + progressColumns + `
		FROM word_progress
		WHERE user_id = $1 AND status = $2
		ORDER BY difficult_count DESC, last_seen_at ASC`

	return s.queryProgress(ctx, query, userID, domain.StatusLearned)
}

// CountPrimaryDue implements store.ProgressStore.CountPrimaryDue
func (s *PostgresProgressStore) CountPrimaryDue(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM word_progress
		WHERE user_id = $1 AND status = $2 AND source = $3`

	var count int
	err := s.db.QueryRowContext(ctx, query, userID, domain.StatusLearned, string(domain.SourceLearned)).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// SummaryByCategory implements store.ProgressStore.SummaryByCategory
func (s *PostgresProgressStore) SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error) {
	query := `
		SELECT category_id, COUNT(*)
		FROM word_progress
		WHERE user_id = $1 AND status = $2 AND source <> $3
		GROUP BY category_id`

	rows, err := s.db.QueryContext(ctx, query, userID, domain.StatusLearned, string(domain.SourceLearned))
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var counts []domain.CategoryLearnedCount
	for rows.Next() {
		var c domain.CategoryLearnedCount
		if err := rows.Scan(&c.CategoryID, &c.Learned); err != nil {
			return nil, MapError(err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return counts, nil
}

// CountDifficult implements store.ProgressStore.CountDifficult
func (s *PostgresProgressStore) CountDifficult(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM word_progress
		WHERE user_id = $1 AND difficult_count >= 2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

func (s *PostgresProgressStore) queryProgress(ctx context.Context, query string, args ...any) ([]*domain.WordProgress, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var progress []*domain.WordProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, MapError(err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return progress, nil
}

func scanProgress(row rowScanner) (*domain.WordProgress, error) {
	var (
		p      domain.WordProgress
		source sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.CategoryID,
		&p.ItemID,
		&p.English,
		&p.Romanian,
		&p.Status,
		&source,
		&p.CorrectStreak,
		&p.DifficultCount,
		&p.LearnedAt,
		&p.LastSeenAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Source = domain.ProgressSource(source.String)
	return &p, nil
}
