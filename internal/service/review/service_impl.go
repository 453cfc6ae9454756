package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bcmenu/benglish-api/internal/domain"
	"github.com/bcmenu/benglish-api/internal/platform/logger"
	"github.com/bcmenu/benglish-api/internal/store"
	"github.com/google/uuid"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	progressStore store.ProgressStore
	maxBatchSize  int
	timeFunc      func() time.Time // Injectable for testing
	logger        *slog.Logger
}

// NewReviewService creates a new ReviewService implementation. A
// non-positive maxBatchSize falls back to MaxBatchSize.
func NewReviewService(progressStore store.ProgressStore, maxBatchSize int, logger *slog.Logger) ReviewService {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxBatchSize <= 0 || maxBatchSize > MaxBatchSize {
		maxBatchSize = MaxBatchSize
	}

	return &reviewServiceImpl{
		progressStore: progressStore,
		maxBatchSize:  maxBatchSize,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "review_service")),
	}
}

// DueItems implements ReviewService.DueItems.
func (s *reviewServiceImpl) DueItems(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultBatchSize
	}
	if limit > s.maxBatchSize {
		limit = s.maxBatchSize
	}

	candidates, err := s.progressStore.ListCandidates(ctx, userID)
	if err != nil {
		log.Error("failed to list review candidates",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list review candidates: %w", err)
	}

	selected := selectBatch(candidates, limit)

	log.Debug("review batch selected",
		slog.String("user_id", userID.String()),
		slog.Int("limit", limit),
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(selected)))
	return selected, nil
}

// DueCount implements ReviewService.DueCount.
func (s *reviewServiceImpl) DueCount(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	count, err := s.progressStore.CountPrimaryDue(ctx, userID)
	if err != nil {
		log.Error("failed to count due words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, fmt.Errorf("failed to count due words: %w", err)
	}
	return count, nil
}

// MarkReviewed implements ReviewService.MarkReviewed.
func (s *reviewServiceImpl) MarkReviewed(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deduped := dedupeIDs(itemIDs)
	if len(deduped) == 0 {
		log.Debug("empty review batch, nothing to record",
			slog.String("user_id", userID.String()))
		return nil
	}

	if err := s.progressStore.TouchReviewed(ctx, userID, deduped, s.timeFunc().UTC()); err != nil {
		log.Error("failed to record review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("items", len(deduped)))
		return fmt.Errorf("failed to record review: %w", err)
	}
	return nil
}

// selectBatch builds a review batch from the user's learned words. The
// primary pool holds the words the user is actively studying, ordered
// hardest first and least recently seen first within equal difficulty. When
// the primary pool does not fill the batch, known words pad it out by least
// recently seen, never repeating an item already chosen.
func selectBatch(candidates []*domain.WordProgress, limit int) []*domain.WordProgress {
	var primary, fallback []*domain.WordProgress
	for _, c := range candidates {
		if c.Source == domain.SourceLearned {
			primary = append(primary, c)
		} else {
			fallback = append(fallback, c)
		}
	}

	sort.SliceStable(primary, func(i, j int) bool {
		if primary[i].DifficultCount != primary[j].DifficultCount {
			return primary[i].DifficultCount > primary[j].DifficultCount
		}
		return primary[i].LastSeenAt.Before(primary[j].LastSeenAt)
	})
	sort.SliceStable(fallback, func(i, j int) bool {
		return fallback[i].LastSeenAt.Before(fallback[j].LastSeenAt)
	})

	selected := make([]*domain.WordProgress, 0, limit)
	seen := make(map[uuid.UUID]struct{}, limit)
	for _, pool := range [][]*domain.WordProgress{primary, fallback} {
		for _, c := range pool {
			if len(selected) >= limit {
				return selected
			}
			if _, dup := seen[c.ItemID]; dup {
				continue
			}
			seen[c.ItemID] = struct{}{}
			selected = append(selected, c)
		}
	}
	return selected
}

// dedupeIDs drops nil and duplicate UUIDs while preserving order.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
