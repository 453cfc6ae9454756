package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// LearnedUpsert carries one item of a learn batch into the store layer.
// The word text is denormalized onto the progress row so summaries and
// review payloads never need a join back into the category document.
type LearnedUpsert struct {
	CategoryID uuid.UUID
	ItemID     uuid.UUID
	English    string
	Romanian   string
	Source     domain.ProgressSource
}

// ProgressStore defines the interface for per-user word progress persistence.
type ProgressStore interface {
	// UpsertLearned records one learned word. On first insert it stamps the
	// word text and learned-at time; on conflict it refreshes status, source
	// and last-seen time and increments the correct streak. The operation is
	// a single atomic statement.
	UpsertLearned(ctx context.Context, userID uuid.UUID, item LearnedUpsert, now time.Time) error

	// IncrementDifficult bumps the difficulty counter for an existing
	// progress row and refreshes its last-seen time. Rows that do not exist
	// are left untouched; no error is returned for a missing row.
	IncrementDifficult(ctx context.Context, userID, categoryID, itemID uuid.UUID, now time.Time) error

	// TouchReviewed refreshes the last-seen time on all the user's progress
	// rows matching the given item IDs, in any category. Missing IDs are
	// skipped silently.
	TouchReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, now time.Time) error

	// ListLearned returns a page of the user's learned progress rows, most
	// recently learned first. A non-nil categoryID restricts the page to
	// that category. Limit is capped by the caller.
	ListLearned(ctx context.Context, userID, categoryID uuid.UUID, offset, limit int) ([]*domain.WordProgress, error)

	// ListCandidates returns all learned progress rows for the user ordered
	// by difficulty descending then last-seen ascending. Review selection
	// policy lives in the service layer; the store only supplies the
	// candidate set.
	ListCandidates(ctx context.Context, userID uuid.UUID) ([]*domain.WordProgress, error)

	// CountPrimaryDue counts learned rows whose source marks them as
	// actively studied, i.e. the primary review bucket.
	CountPrimaryDue(ctx context.Context, userID uuid.UUID) (int, error)

	// SummaryByCategory returns learned-word counts grouped by category,
	// excluding rows whose source is SourceLearned.
	SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error)

	// CountDifficult counts the user's progress rows whose difficulty
	// counter has reached 2, the threshold at which a word is surfaced as
	// genuinely difficult rather than a one-off miss.
	CountDifficult(ctx context.Context, userID uuid.UUID) (int, error)

	// WithTx returns a ProgressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
