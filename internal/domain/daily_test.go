package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidDate(t *testing.T) {
	t.Parallel()

	valid := []string{"2025-01-01", "1999-12-31", "2025-02-30"} // format only, not calendar sanity
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("Expected %q to be valid", d)
		}
	}

	invalid := []string{"", "2025-1-1", "01-01-2025", "2025/01/01", "2025-01-01T00:00:00Z", "20250101"}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("Expected %q to be invalid", d)
		}
	}
}

func TestDailyDeltasClamp(t *testing.T) {
	t.Parallel()

	d := DailyDeltas{Learned: -3, Practiced: 2, Reviewed: 0}.Clamp()
	if d.Learned != 0 || d.Practiced != 2 || d.Reviewed != 0 {
		t.Errorf("Expected negative deltas dropped, got %+v", d)
	}

	if !(DailyDeltas{Learned: -1, Practiced: 0, Reviewed: -5}).Zero() {
		t.Error("Expected all-nonpositive deltas to be zero")
	}

	if (DailyDeltas{Reviewed: 1}).Zero() {
		t.Error("Expected positive delta not to be zero")
	}
}

func TestDailyProgressValidate(t *testing.T) {
	t.Parallel()

	d := DailyProgress{ID: uuid.New(), UserID: uuid.New(), Date: "2025-03-04"}
	if err := d.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	d.Date = "03/04/2025"
	if err := d.Validate(); err != ErrInvalidDate {
		t.Errorf("Expected %v, got %v", ErrInvalidDate, err)
	}

	d.Date = "2025-03-04"
	d.Learned = -1
	if err := d.Validate(); err != ErrDailyNegativeCounter {
		t.Errorf("Expected %v, got %v", ErrDailyNegativeCounter, err)
	}
}
