package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/platform/logger"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
)

// Verify interface compliance at compile time
var _ ProgressService = (*progressServiceImpl)(nil)

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	categoryStore store.CategoryStore
	progressStore store.ProgressStore
	dailyStore    store.DailyProgressStore
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(
	categoryStore store.CategoryStore,
	progressStore store.ProgressStore,
	dailyStore store.DailyProgressStore,
	logger *slog.Logger,
) ProgressService {
	if categoryStore == nil {
		panic("categoryStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if dailyStore == nil {
		panic("dailyStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressServiceImpl{
		categoryStore: categoryStore,
		progressStore: progressStore,
		dailyStore:    dailyStore,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "progress_service")),
	}
}

// MarkLearnedBatch implements ProgressService.MarkLearnedBatch.
func (s *progressServiceImpl) MarkLearnedBatch(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	items []LearnItem,
	source domain.ProgressSource,
) (*BatchResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if categoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category id is required", domain.ErrInvalidID)
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if !domain.ValidSource(source) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}

	// The category read happens before the writes; reading slightly stale
	// items only affects which canonical text gets denormalized.
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	now := s.timeFunc().UTC()
	result := &BatchResult{}
	for _, item := range items {
		if item.ItemID == uuid.Nil {
			result.Failed++
			continue
		}

		english, romanian := item.English, item.Romanian
		if english == "" || romanian == "" {
			if canonical, ok := category.ItemByID(item.ItemID); ok {
				if english == "" {
					english = canonical.English
				}
				if romanian == "" {
					romanian = canonical.Romanian
				}
			}
		}

		upsert := store.LearnedUpsert{
			CategoryID: categoryID,
			ItemID:     item.ItemID,
			English:    english,
			Romanian:   romanian,
			Source:     source,
		}
		if err := s.progressStore.UpsertLearned(ctx, userID, upsert, now); err != nil {
			// A failing item must not abort its siblings.
			log.Warn("failed to record learned word",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
				slog.String("item_id", item.ItemID.String()))
			result.Failed++
			continue
		}
		result.Applied++
	}

	log.Debug("learn batch applied",
		slog.String("user_id", userID.String()),
		slog.String("category_id", categoryID.String()),
		slog.Int("applied", result.Applied),
		slog.Int("failed", result.Failed))
	return result, nil
}

// MarkWrongAnswer implements ProgressService.MarkWrongAnswer.
func (s *progressServiceImpl) MarkWrongAnswer(ctx context.Context, userID, categoryID, itemID uuid.UUID) error {
	if categoryID == uuid.Nil || itemID == uuid.Nil {
		return fmt.Errorf("%w: category id and item id are required", domain.ErrInvalidID)
	}

	if err := s.progressStore.IncrementDifficult(ctx, userID, categoryID, itemID, s.timeFunc().UTC()); err != nil {
		return fmt.Errorf("failed to record wrong answer: %w", err)
	}
	return nil
}

// ListLearned implements ProgressService.ListLearned.
func (s *progressServiceImpl) ListLearned(ctx context.Context, userID, categoryID uuid.UUID, skip, limit int) ([]*domain.WordProgress, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	learned, err := s.progressStore.ListLearned(ctx, userID, categoryID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list learned words: %w", err)
	}
	return learned, nil
}

// SummaryByCategory implements ProgressService.SummaryByCategory.
func (s *progressServiceImpl) SummaryByCategory(ctx context.Context, userID uuid.UUID) ([]domain.CategoryLearnedCount, error) {
	summary, err := s.progressStore.SummaryByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize progress: %w", err)
	}
	return summary, nil
}

// DifficultCount implements ProgressService.DifficultCount.
func (s *progressServiceImpl) DifficultCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.progressStore.CountDifficult(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count difficult words: %w", err)
	}
	return count, nil
}

// ActivityDays implements ProgressService.ActivityDays.
func (s *progressServiceImpl) ActivityDays(ctx context.Context, userID uuid.UUID) ([]string, error) {
	days, err := s.dailyStore.ListActiveDays(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity days: %w", err)
	}
	return days, nil
}

// DailyProgress implements ProgressService.DailyProgress.
func (s *progressServiceImpl) DailyProgress(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyProgress, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	progress, err := s.dailyStore.Get(ctx, userID, date)
	if err != nil {
		if store.IsNotFoundError(err) {
			// No activity that day reads as zero counters.
			return &domain.DailyProgress{UserID: userID, Date: date}, nil
		}
		return nil, fmt.Errorf("failed to load daily progress: %w", err)
	}
	return progress, nil
}

// IncrementDaily implements ProgressService.IncrementDaily.
func (s *progressServiceImpl) IncrementDaily(ctx context.Context, userID uuid.UUID, date string, deltas domain.DailyDeltas) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidDate(date) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	clamped := deltas.Clamp()
	if clamped.Zero() {
		log.Debug("daily increment with no positive deltas, skipping",
			slog.String("user_id", userID.String()),
			slog.String("date", date))
		return nil
	}

	if _, err := s.dailyStore.Increment(ctx, userID, date, clamped); err != nil {
		return fmt.Errorf("failed to increment daily progress: %w", err)
	}
	return nil
}
