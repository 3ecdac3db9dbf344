package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/domain/mastery"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

const (
	// defaultBatchSize is the session size used when the caller passes
	// limit 0 and no override is configured.
	defaultBatchSize = 10

	// recommendedCap bounds the dashboard recommendation list.
	recommendedCap = 20

	// conflictRetries bounds how many times a review recording is retried
	// after losing an optimistic concurrency race.
	conflictRetries = 3
)

// Verify interface compliance at compile time
var _ PracticeService = (*practiceServiceImpl)(nil)

// practiceServiceImpl implements the PracticeService interface.
type practiceServiceImpl struct {
	vocabularyStore store.VocabularyStore
	masteryService  mastery.Service
	emitter         events.EventEmitter
	clock           Clock
	batchSize       int
	logger          *slog.Logger

	// rngMu serializes access to rng: rand.Rand is not safe for
	// concurrent use and selection runs on every request goroutine.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Config carries the optional knobs for NewPracticeService.
type Config struct {
	// BatchSize overrides the default session size when positive.
	BatchSize int

	// Clock overrides the wall clock. Nil selects the system clock.
	Clock Clock

	// Rand supplies the randomness for tie-breaking. Nil selects a
	// time-seeded source.
	Rand *rand.Rand
}

// NewPracticeService creates a new PracticeService implementation.
// The emitter may be nil, in which case no achievement check events
// are published.
func NewPracticeService(
	vocabularyStore store.VocabularyStore,
	masteryService mastery.Service,
	emitter events.EventEmitter,
	cfg Config,
	logger *slog.Logger,
) PracticeService {
	if vocabularyStore == nil {
		panic("vocabularyStore cannot be nil")
	}
	if masteryService == nil {
		panic("masteryService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &practiceServiceImpl{
		vocabularyStore: vocabularyStore,
		masteryService:  masteryService,
		emitter:         emitter,
		clock:           clock,
		rng:             rng,
		batchSize:       batchSize,
		logger:          logger.With(slog.String("component", "practice_service")),
	}
}

// SelectBatch implements PracticeService.SelectBatch.
func (s *practiceServiceImpl) SelectBatch(
	ctx context.Context,
	userID uuid.UUID,
	filterTier *domain.Tier,
	limit int,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 0 {
		log.Warn("invalid batch limit requested",
			slog.String("user_id", userID.String()),
			slog.Int("limit", limit))
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.batchSize
	}

	if filterTier != nil && !filterTier.IsValid() {
		log.Warn("invalid tier filter requested",
			slog.String("user_id", userID.String()),
			slog.String("tier", string(*filterTier)))
		return nil, ErrInvalidTier
	}

	items, err := s.dueItems(ctx, userID, filterTier, nil)
	if err != nil {
		log.Error("failed to load due items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSelectBatchError("failed to load due items", err)
	}

	if len(items) > limit {
		items = items[:limit]
	}

	log.Debug("assembled practice batch",
		slog.String("user_id", userID.String()),
		slog.Int("batch_size", len(items)))
	return items, nil
}

// Recommended implements PracticeService.Recommended.
// Mastered items are excluded: recommendations steer the learner toward
// vocabulary that still needs work.
func (s *practiceServiceImpl) Recommended(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exclude := domain.TierMastered
	items, err := s.dueItems(ctx, userID, nil, &exclude)
	if err != nil {
		log.Error("failed to load recommended items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewSelectBatchError("failed to load recommended items", err)
	}

	if len(items) > recommendedCap {
		items = items[:recommendedCap]
	}

	return items, nil
}

// dueItems loads the user's items (restricted to filterTier when non-nil),
// filters to those due now (optionally excluding one tier), and orders them
// least recently reviewed first with random tie-breaking. Shuffling before
// the stable sort turns insertion order into a uniform random order within
// each equal key.
func (s *practiceServiceImpl) dueItems(
	ctx context.Context,
	userID uuid.UUID,
	filterTier *domain.Tier,
	excludeTier *domain.Tier,
) ([]*domain.VocabularyItem, error) {
	all, err := s.vocabularyStore.ListByUser(ctx, userID, store.ItemFilter{Tier: filterTier})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	due := make([]*domain.VocabularyItem, 0, len(all))
	for _, item := range all {
		if excludeTier != nil && item.Tier == *excludeTier {
			continue
		}
		if s.masteryService.IsDue(item, now) {
			due = append(due, item)
		}
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	s.rngMu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].LastReviewedAt, due[j].LastReviewedAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	return due, nil
}

// RecordOutcome implements PracticeService.RecordOutcome.
func (s *practiceServiceImpl) RecordOutcome(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	outcome ReviewOutcome,
) (*RecordResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording review outcome",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.Bool("correct", outcome.Correct))

	var result *RecordResult
	for attempt := 0; attempt <= conflictRetries; attempt++ {
		item, err := s.vocabularyStore.GetForUser(ctx, itemID, userID)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				log.Warn("item not found for review",
					slog.String("user_id", userID.String()),
					slog.String("item_id", itemID.String()))
				return nil, ErrItemNotFound
			}
			return nil, NewRecordOutcomeError("failed to load item", err)
		}

		previousTier := item.Tier
		updated, err := s.masteryService.ApplyOutcome(item, outcome.Correct, s.clock.Now())
		if err != nil {
			return nil, NewRecordOutcomeError("failed to apply outcome", err)
		}

		err = s.vocabularyStore.UpdateWithVersion(ctx, updated)
		if err == nil {
			updated.Version++
			result = &RecordResult{
				Item:         updated,
				TierChanged:  updated.Tier != previousTier,
				PreviousTier: previousTier,
			}
			break
		}

		if errors.Is(err, store.ErrConflict) {
			log.Debug("review lost concurrency race, retrying",
				slog.String("item_id", itemID.String()),
				slog.Int("attempt", attempt+1))
			continue
		}
		if errors.Is(err, store.ErrItemNotFound) {
			// The item vanished between read and write.
			return nil, ErrItemNotFound
		}
		return nil, NewRecordOutcomeError("failed to save review", err)
	}

	if result == nil {
		log.Warn("review retries exhausted",
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID.String()))
		return nil, ErrConflictRetriesExhausted
	}

	s.emitAchievementCheck(ctx, log, userID)

	log.Info("review outcome recorded",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.String("tier", string(result.Item.Tier)),
		slog.Bool("tier_changed", result.TierChanged))
	return result, nil
}

// emitAchievementCheck publishes an achievement check request after a
// successful review. Emission failures are logged and swallowed: the
// review itself has already been persisted.
func (s *practiceServiceImpl) emitAchievementCheck(ctx context.Context, log *slog.Logger, userID uuid.UUID) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewTaskRequestEvent(
		events.TaskTypeAchievementCheck,
		map[string]string{"user_id": userID.String()},
	)
	if err != nil {
		log.Error("failed to build achievement check event",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit achievement check event",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

// Stats implements PracticeService.Stats.
func (s *practiceServiceImpl) Stats(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	counts, err := s.vocabularyStore.CountByTier(ctx, userID)
	if err != nil {
		log.Error("failed to load tier counts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return counts, nil
}

// NextDueAt implements PracticeService.NextDueAt.
func (s *practiceServiceImpl) NextDueAt(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
) (*DueInfo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.vocabularyStore.GetForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		log.Error("failed to load item for due check",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	now := s.clock.Now()
	return &DueInfo{
		ItemID: item.ID,
		Due:    s.masteryService.IsDue(item, now),
		DueAt:  s.masteryService.NextDueAt(item, now).Format(time.RFC3339),
	}, nil
}
