// Package progress implements per-user learning progress: the word ledger,
// its aggregations, and the daily activity counters.
package progress

import (
	"context"
	"errors"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// MaxPageSize bounds one page of learned words.
const MaxPageSize = 200

// LearnItem is one entry of a learn batch after boundary decoding. English
// and Romanian carry the client's word text when present; empty fields fall
// back to the category's canonical text.
type LearnItem struct {
	ItemID   uuid.UUID
	English  string
	Romanian string
}

// BatchResult reports how a learn batch fared. Items are applied
// independently, so a partial outcome is normal rather than exceptional.
type BatchResult struct {
	Applied int
	Failed  int
}

// ProgressService provides methods for recording and aggregating a user's
// vocabulary progress.
type ProgressService interface {
	// MarkLearnedBatch records the given items of a category as learned
	// with the given source. The category must exist. Items are upserted
	// one at a time, unordered; a failing item neither aborts nor taints
	// its siblings, and the result reports both tallies.
	MarkLearnedBatch(ctx context.Context, userID, categoryID uuid.UUID, items []LearnItem, source domain.ProgressSource) (*BatchResult, error)

	// MarkWrongAnswer bumps the difficulty counter on an existing progress
	// row. When the user never learned the word the call is a silent no-op:
	// wrong answers never create ledger rows.
	MarkWrongAnswer(ctx context.Context, userID, categoryID, itemID uuid.UUID) error

	// ListLearned returns a page of the user's learned words, most recent
	// first. A non-nil categoryID restricts the page to that category.
	// Negative skip is treated as zero; limit is clamped to MaxPageSize,
	// with non-positive values taking the full page.
	ListLearned(ctx context.Context, userID, categoryID uuid.UUID, skip, limit int) ([]*domain.WordProgress, error)

	// SummaryByCategory returns per-category learned-word counts, excluding
	// words the user is still actively studying.
	SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error)

	// DifficultCount returns how many of the user's words have been missed
	// often enough to count as difficult.
	DifficultCount(ctx context.Context, userID uuid.UUID) (int, error)

	// ActivityDays returns every date with recorded activity, ascending.
	ActivityDays(ctx context.Context, userID uuid.UUID) ([]string, error)

	// DailyProgress returns the counters for the given date. A day without
	// activity yields zero counters, not an error.
	DailyProgress(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyProgress, error)

	// IncrementDaily adds the positive deltas to the date's counters.
	// Non-positive deltas are dropped; a call with nothing left to add is a
	// no-op success.
	IncrementDaily(ctx context.Context, userID uuid.UUID, date string, deltas domain.DailyDeltas) error
}

// Common error types for ProgressService
var (
	// ErrEmptyBatch indicates a learn batch with no items.
	ErrEmptyBatch = errors.New("learn batch must contain at least one item")

	// ErrInvalidSource indicates an unrecognized progress source.
	ErrInvalidSource = errors.New("invalid progress source")
)
