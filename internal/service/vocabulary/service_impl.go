package vocabulary

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// Verify interface compliance at compile time
var _ VocabularyService = (*vocabularyServiceImpl)(nil)

// vocabularyServiceImpl implements the VocabularyService interface.
type vocabularyServiceImpl struct {
	vocabularyStore store.VocabularyStore
	emitter         events.EventEmitter
	logger          *slog.Logger
}

// NewVocabularyService creates a new VocabularyService implementation.
// The emitter may be nil, in which case no achievement check events are
// published.
func NewVocabularyService(
	vocabularyStore store.VocabularyStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) VocabularyService {
	if vocabularyStore == nil {
		panic("vocabularyStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &vocabularyServiceImpl{
		vocabularyStore: vocabularyStore,
		emitter:         emitter,
		logger:          logger.With(slog.String("component", "vocabulary_service")),
	}
}

// Create implements VocabularyService.Create.
func (s *vocabularyServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateItemInput,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewVocabularyItem(userID, input.Term, input.Translation, input.Context, input.Notes)
	if err != nil {
		log.Warn("rejected invalid vocabulary item",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.vocabularyStore.Create(ctx, item); err != nil {
		if errors.Is(err, store.ErrTermExists) {
			log.Debug("duplicate term rejected",
				slog.String("user_id", userID.String()),
				slog.String("term", item.Term))
			return nil, ErrDuplicateTerm
		}
		log.Error("failed to create vocabulary item",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("create_item", "failed to save item", err)
	}

	s.emitAchievementCheck(ctx, log, userID)

	log.Info("vocabulary item created",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("term", item.Term))
	return item, nil
}

// Get implements VocabularyService.Get.
func (s *vocabularyServiceImpl) Get(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.vocabularyStore.GetForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		log.Error("failed to retrieve vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, newServiceError("get_item", "failed to retrieve item", err)
	}

	return item, nil
}

// List implements VocabularyService.List.
func (s *vocabularyServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	filter ListFilter,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if filter.Tier != nil && !filter.Tier.IsValid() {
		log.Warn("invalid tier filter requested",
			slog.String("user_id", userID.String()),
			slog.String("tier", string(*filter.Tier)))
		return nil, ErrInvalidTier
	}

	items, err := s.vocabularyStore.ListByUser(ctx, userID, store.ItemFilter{
		Tier:   filter.Tier,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
	if err != nil {
		log.Error("failed to list vocabulary items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, newServiceError("list_items", "failed to list items", err)
	}

	return items, nil
}

// UpdateMetadata implements VocabularyService.UpdateMetadata.
func (s *vocabularyServiceImpl) UpdateMetadata(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	input UpdateItemInput,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := s.vocabularyStore.GetForUser(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		log.Error("failed to load item for metadata update",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, newServiceError("update_item", "failed to load item", err)
	}

	if err := item.UpdateMetadata(input.Term, input.Translation, input.Context, input.Notes); err != nil {
		log.Warn("rejected invalid metadata update",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, err
	}

	if err := s.vocabularyStore.UpdateMetadata(ctx, item); err != nil {
		switch {
		case errors.Is(err, store.ErrTermExists):
			return nil, ErrDuplicateTerm
		case errors.Is(err, store.ErrItemNotFound):
			return nil, ErrItemNotFound
		}
		log.Error("failed to save metadata update",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, newServiceError("update_item", "failed to save item", err)
	}

	log.Info("vocabulary item updated",
		slog.String("item_id", itemID.String()),
		slog.String("user_id", userID.String()))
	return item, nil
}

// Delete implements VocabularyService.Delete.
func (s *vocabularyServiceImpl) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.vocabularyStore.Delete(ctx, itemID, userID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			return ErrItemNotFound
		}
		log.Error("failed to delete vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return newServiceError("delete_item", "failed to delete item", err)
	}

	log.Info("vocabulary item deleted",
		slog.String("item_id", itemID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// emitAchievementCheck publishes an achievement check request after a pool
// change. Emission failures are logged and swallowed.
func (s *vocabularyServiceImpl) emitAchievementCheck(ctx context.Context, log *slog.Logger, userID uuid.UUID) {
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
