package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Daily-progress validation errors
var (
	// ErrDailyUserIDEmpty is returned when a daily counter's user ID is nil.
	ErrDailyUserIDEmpty = errors.New("daily progress user ID cannot be empty")

	// ErrDailyNegativeCounter is returned when a counter would go negative.
	// Counters only ever increase.
	ErrDailyNegativeCounter = errors.New("daily progress counters cannot be negative")
)

// dateFormat matches calendar days in the user-local YYYY-MM-DD convention.
var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a YYYY-MM-DD calendar day.
func ValidDate(s string) bool {
	return dateFormat.MatchString(s)
}

// DailyProgress holds per-user, per-day activity counters for the calendar
// and streak views. Unique per (user, date); counters are incremented with
// atomic adds and never decremented.
type DailyProgress struct {
	ID        uuid.UUID `json:"-"`
	UserID    uuid.UUID `json:"-"`
	Date      string    `json:"date"`
	Learned   int       `json:"learned"`
	Practiced int       `json:"practiced"`
	Reviewed  int       `json:"reviewed"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the DailyProgress has valid data.
func (d *DailyProgress) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrDailyUserIDEmpty
	}

	if !ValidDate(d.Date) {
		return ErrInvalidDate
	}

	if d.Learned < 0 || d.Practiced < 0 || d.Reviewed < 0 {
		return ErrDailyNegativeCounter
	}

	return nil
}

// DailyDeltas is the set of counter increments for one day. Non-positive
// fields are dropped, not subtracted.
type DailyDeltas struct {
	Learned   int
	Practiced int
	Reviewed  int
}

// Clamp returns a copy with every non-positive field zeroed.
func (d DailyDeltas) Clamp() DailyDeltas {
	if d.Learned < 0 {
		d.Learned = 0
	}
	if d.Practiced < 0 {
		d.Practiced = 0
	}
	if d.Reviewed < 0 {
		d.Reviewed = 0
	}
	return d
}

// Zero reports whether no field carries a positive delta.
func (d DailyDeltas) Zero() bool {
	return d.Learned <= 0 && d.Practiced <= 0 && d.Reviewed <= 0
}
