package store

import (
	"context"
	"database/sql"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/google/uuid"
)

// DailyProgressStore defines the interface for per-day activity counters.
type DailyProgressStore interface {
	// Increment adds the deltas to the user's counters for the given date,
	// creating the row when absent. The operation is a single atomic upsert.
	Increment(ctx context.Context, userID uuid.UUID, date string, deltas domain.DailyDeltas) (*domain.DailyProgress, error)

	// Get returns the user's counters for the given date.
	// Returns ErrDailyProgressNotFound when no activity was recorded.
	Get(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyProgress, error)

	// ListActiveDays returns the distinct dates on which the user recorded
	// any activity, in ascending date order.
	ListActiveDays(ctx context.Context, userID uuid.UUID) ([]string, error)

	// WithTx returns a DailyProgressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DailyProgressStore
}
