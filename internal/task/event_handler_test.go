package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-api/internal/events"
)

func TestAchievementEventHandler(t *testing.T) {
	ctx := context.Background()
	vocab := &mockVocabularyStore{}
	achievements := &mockAchievementStore{}

	t.Run("enqueues a task for achievement check events", func(t *testing.T) {
		q := NewTaskQueue(1, discardLogger())
		handler := NewAchievementEventHandler(nil, vocab, achievements, q, discardLogger())

		event, err := events.NewTaskRequestEvent(
			events.TaskTypeAchievementCheck,
			map[string]string{"user_id": uuid.New().String()},
		)
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(ctx, event))
		assert.Len(t, q.GetChannel(), 1)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		q := NewTaskQueue(1, discardLogger())
		handler := NewAchievementEventHandler(nil, vocab, achievements, q, discardLogger())

		event, err := events.NewTaskRequestEvent("unrelated", map[string]string{})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(ctx, event))
		assert.Empty(t, q.GetChannel())
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		q := NewTaskQueue(1, discardLogger())
		handler := NewAchievementEventHandler(nil, vocab, achievements, q, discardLogger())

		event, err := events.NewTaskRequestEvent(
			events.TaskTypeAchievementCheck,
			map[string]string{"user_id": "not-a-uuid"},
		)
		require.NoError(t, err)

		assert.Error(t, handler.HandleEvent(ctx, event))
	})

	t.Run("surfaces queue errors", func(t *testing.T) {
		q := NewTaskQueue(0, discardLogger())
		handler := NewAchievementEventHandler(nil, vocab, achievements, q, discardLogger())

		event, err := events.NewTaskRequestEvent(
			events.TaskTypeAchievementCheck,
			map[string]string{"user_id": uuid.New().String()},
		)
		require.NoError(t, err)

		assert.ErrorIs(t, handler.HandleEvent(ctx, event), ErrQueueFull)
	})
}
