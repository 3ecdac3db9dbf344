package task

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/store"
)

// AchievementEventHandler implements the events.EventHandler interface.
// It turns achievement check request events into tasks and enqueues them
// for background processing.
type AchievementEventHandler struct {
	db               *sql.DB
	vocabularyStore  store.VocabularyStore
	achievementStore store.AchievementStore
	queue            TaskQueueWriter
	logger           *slog.Logger
}

// Ensure AchievementEventHandler implements events.EventHandler
var _ events.EventHandler = (*AchievementEventHandler)(nil)

// NewAchievementEventHandler creates an event handler that builds
// achievement check tasks and submits them to the given queue. db may be
// nil; tasks then evaluate without a wrapping transaction.
func NewAchievementEventHandler(
	db *sql.DB,
	vocabularyStore store.VocabularyStore,
	achievementStore store.AchievementStore,
	queue TaskQueueWriter,
	logger *slog.Logger,
) *AchievementEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementEventHandler{
		db:               db,
		vocabularyStore:  vocabularyStore,
		achievementStore: achievementStore,
		queue:            queue,
		logger:           logger.With("component", "achievement_event_handler"),
	}
}

// HandleEvent processes achievement check events by creating and enqueueing tasks.
// Events of other types are ignored so additional handlers can coexist on the
// same emitter.
func (h *AchievementEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != events.TaskTypeAchievementCheck {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	t, err := NewAchievementCheckTask(payload.UserID, h.db, h.vocabularyStore, h.achievementStore, h.logger)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"user_id", payload.UserID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		h.logger.Error("failed to enqueue task",
			"error", err,
			"task_id", t.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	h.logger.Debug("achievement check task enqueued",
		"task_id", t.ID(),
		"user_id", payload.UserID,
		"event_id", event.ID)
	return nil
}
