// Package review implements selection of learned words for review sessions
// and recording of completed reviews.
package review

import (
	"context"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// Default and ceiling for the number of words returned by one session.
const (
	DefaultBatchSize = 20
	MaxBatchSize     = 200
)

// ReviewService provides methods for building review sessions from a user's
// learned words.
type ReviewService interface {
	// DueItems selects up to limit words for the user to review. Words the
	// user is actively studying come first, hardest and least recently seen
	// leading; the remainder of the batch is filled with known words by
	// least recently seen. A non-positive limit selects DefaultBatchSize
	// words; no call returns more than MaxBatchSize. A user with nothing to
	// review gets an empty slice, not an error.
	DueItems(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WordProgress, error)

	// DueCount returns how many actively studied words the user has,
	// without materializing them.
	DueCount(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkReviewed records that the given items were just reviewed,
	// refreshing their last-seen time. Duplicate IDs are collapsed and an
	// empty list is a no-op success.
	MarkReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) error
}
