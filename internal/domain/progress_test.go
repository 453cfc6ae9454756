package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestWordProgressValidate(t *testing.T) {
	t.Parallel()

	rec := WordProgress{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		ItemID:     uuid.New(),
		Status:     StatusLearned,
		Source:     SourceLearned,
	}

	if err := rec.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The legacy unset bucket is valid.
	rec.Source = SourceUnset
	if err := rec.Validate(); err != nil {
		t.Errorf("Expected unset source to be valid, got %v", err)
	}

	rec.Source = "guessed"
	if err := rec.Validate(); err != ErrInvalidProgressSource {
		t.Errorf("Expected %v, got %v", ErrInvalidProgressSource, err)
	}

	rec.Source = SourceKnown
	rec.Status = "done"
	if err := rec.Validate(); err != ErrInvalidProgressStatus {
		t.Errorf("Expected %v, got %v", ErrInvalidProgressStatus, err)
	}

	rec.Status = StatusLearned
	rec.ItemID = uuid.Nil
	if err := rec.Validate(); err != ErrProgressItemIDEmpty {
		t.Errorf("Expected %v, got %v", ErrProgressItemIDEmpty, err)
	}
}

func TestValidSource(t *testing.T) {
	t.Parallel()

	for _, s := range []ProgressSource{SourceLearned, SourceKnown, SourceUnset} {
		if !ValidSource(s) {
			t.Errorf("Expected %q to be valid", s)
		}
	}

	if ValidSource("legacy") {
		t.Error("Expected unknown source to be invalid")
	}
}
