package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the learning state of a word for a user.
type ProgressStatus string

// Valid progress statuses.
const (
	StatusLearning ProgressStatus = "learning"
	StatusLearned  ProgressStatus = "learned"
)

// ProgressSource records how a word entered the learned set: through active
// study, or because the user declared it already known. Records created
// before the field existed carry SourceUnset and are treated as a distinct
// third bucket — they behave like "known" for summaries and review fallback
// but are never merged into either named bucket.
type ProgressSource string

// Valid progress sources.
const (
	SourceLearned ProgressSource = "learned"
	SourceKnown   ProgressSource = "known"
	SourceUnset   ProgressSource = ""
)

// Progress-specific validation errors
var (
	// ErrProgressUserIDEmpty is returned when a progress record's user ID is nil.
	ErrProgressUserIDEmpty = errors.New("progress user ID cannot be empty")

	// ErrProgressCategoryIDEmpty is returned when a progress record's category ID is nil.
	ErrProgressCategoryIDEmpty = errors.New("progress category ID cannot be empty")

	// ErrProgressItemIDEmpty is returned when a progress record's item ID is nil.
	ErrProgressItemIDEmpty = errors.New("progress item ID cannot be empty")

	// ErrInvalidProgressStatus is returned when a status is not a known value.
	ErrInvalidProgressStatus = errors.New("invalid progress status")

	// ErrInvalidProgressSource is returned when a source is not a known value.
	ErrInvalidProgressSource = errors.New("invalid progress source")
)

// WordProgress is the per-user learning state of one item. Unique per
// (user, category, item). Created on the first learn/known call and mutated
// on every subsequent learn/review/wrong-answer event; never deleted.
type WordProgress struct {
	ID         uuid.UUID `json:"-"`
	UserID     uuid.UUID `json:"-"`
	CategoryID uuid.UUID `json:"category"`
	ItemID     uuid.UUID `json:"itemId"`

	// Denormalized at creation for convenience; the category stays the
	// source of truth.
	English  string `json:"english"`
	Romanian string `json:"romanian"`

	Status ProgressStatus `json:"status"`
	Source ProgressSource `json:"source"`

	CorrectStreak  int `json:"correctStreak"`
	DifficultCount int `json:"difficultCount"`

	LearnedAt  time.Time `json:"learnedAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// Validate checks if the WordProgress has valid data.
func (p *WordProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProgressUserIDEmpty
	}

	if p.CategoryID == uuid.Nil {
		return ErrProgressCategoryIDEmpty
	}

	if p.ItemID == uuid.Nil {
		return ErrProgressItemIDEmpty
	}

	if p.Status != StatusLearning && p.Status != StatusLearned {
		return ErrInvalidProgressStatus
	}

	if !ValidSource(p.Source) {
		return ErrInvalidProgressSource
	}

	return nil
}

// ValidSource reports whether s is one of the known source buckets.
func ValidSource(s ProgressSource) bool {
	return s == SourceLearned || s == SourceKnown || s == SourceUnset
}

// CategoryLearnedCount is one row of the "already knew these" summary:
// the number of known/unset learned records in a category.
type CategoryLearnedCount struct {
	CategoryID uuid.UUID `json:"_id"`
	Learned    int       `json:"learned"`
}
