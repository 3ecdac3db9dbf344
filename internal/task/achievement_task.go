package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/store"
)

// achievementRule pairs an achievement definition with the predicate that
// decides whether a user's tier counts satisfy it.
type achievementRule struct {
	Code        string
	Title       string
	Description string
	Earned      func(counts *domain.TierCounts) bool
}

// achievementRules lists every known achievement. Evaluation is
// deterministic over the current counts, and awarding is idempotent at the
// store level, so re-running a check never double-awards.
var achievementRules = []achievementRule{
	{
		Code:        "first_word",
		Title:       "First Steps",
		Description: "Add your first vocabulary word",
		Earned:      func(c *domain.TierCounts) bool { return c.Total >= 1 },
	},
	{
		Code:        "ten_words",
		Title:       "Word Collector",
		Description: "Build a vocabulary of 10 words",
		Earned:      func(c *domain.TierCounts) bool { return c.Total >= 10 },
	},
	{
		Code:        "fifty_words",
		Title:       "Lexicon Builder",
		Description: "Build a vocabulary of 50 words",
		Earned:      func(c *domain.TierCounts) bool { return c.Total >= 50 },
	},
	{
		Code:        "first_mastered",
		Title:       "Mastery Begins",
		Description: "Master your first word",
		Earned:      func(c *domain.TierCounts) bool { return c.Mastered >= 1 },
	},
	{
		Code:        "ten_mastered",
		Title:       "Polyglot in Training",
		Description: "Master 10 words",
		Earned:      func(c *domain.TierCounts) bool { return c.Mastered >= 10 },
	},
	{
		Code:        "fifty_mastered",
		Title:       "Word Master",
		Description: "Master 50 words",
		Earned:      func(c *domain.TierCounts) bool { return c.Mastered >= 50 },
	},
}

// achievementCheckPayload is the serialized task payload.
type achievementCheckPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// AchievementCheckTask evaluates a user's achievements against their
// current vocabulary statistics and awards any newly earned ones.
type AchievementCheckTask struct {
	id               uuid.UUID
	userID           uuid.UUID
	db               *sql.DB
	vocabularyStore  store.VocabularyStore
	achievementStore store.AchievementStore
	logger           *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// Ensure AchievementCheckTask implements the Task interface
var _ Task = (*AchievementCheckTask)(nil)

// NewAchievementCheckTask creates a new achievement evaluation task for the
// given user. db may be nil, in which case the evaluation runs directly on
// the stores instead of inside a transaction.
func NewAchievementCheckTask(
	userID uuid.UUID,
	db *sql.DB,
	vocabularyStore store.VocabularyStore,
	achievementStore store.AchievementStore,
	logger *slog.Logger,
) (*AchievementCheckTask, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if vocabularyStore == nil {
		return nil, fmt.Errorf("vocabulary store cannot be nil")
	}
	if achievementStore == nil {
		return nil, fmt.Errorf("achievement store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AchievementCheckTask{
		id:               uuid.New(),
		userID:           userID,
		db:               db,
		vocabularyStore:  vocabularyStore,
		achievementStore: achievementStore,
		logger:           logger.With("component", "achievement_check_task"),
		status:           TaskStatusPending,
	}, nil
}

// ID implements Task.ID
func (t *AchievementCheckTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type
func (t *AchievementCheckTask) Type() string {
	return events.TaskTypeAchievementCheck
}

// Payload implements Task.Payload
func (t *AchievementCheckTask) Payload() []byte {
	data, err := json.Marshal(achievementCheckPayload{UserID: t.userID})
	if err != nil {
		return nil
	}
	return data
}

// Status implements Task.Status
func (t *AchievementCheckTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *AchievementCheckTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}

// Execute implements Task.Execute
// It loads the user's tier counts once and awards every rule the counts
// satisfy. Already-held achievements are skipped by the store. With a
// database handle the whole evaluation runs in one transaction, so the
// counts and the awards see a consistent snapshot.
func (t *AchievementCheckTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	log := t.logger.With("task_id", t.id, "user_id", t.userID)
	log.Debug("evaluating achievements")

	var err error
	if t.db != nil {
		err = store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
			return t.evaluate(ctx, log, t.vocabularyStore.WithTx(tx), t.achievementStore.WithTx(tx))
		})
	} else {
		err = t.evaluate(ctx, log, t.vocabularyStore, t.achievementStore)
	}
	if err != nil {
		t.setStatus(TaskStatusFailed)
		return err
	}

	t.setStatus(TaskStatusCompleted)
	return nil
}

// evaluate checks every achievement rule against the user's current tier
// counts and awards the ones they satisfy.
func (t *AchievementCheckTask) evaluate(
	ctx context.Context,
	log *slog.Logger,
	vocabularyStore store.VocabularyStore,
	achievementStore store.AchievementStore,
) error {
	counts, err := vocabularyStore.CountByTier(ctx, t.userID)
	if err != nil {
		return fmt.Errorf("failed to load tier counts: %w", err)
	}

	awarded := 0
	for _, rule := range achievementRules {
		if !rule.Earned(counts) {
			continue
		}

		achievement, err := domain.NewAchievement(t.userID, rule.Code, rule.Title, rule.Description)
		if err != nil {
			return fmt.Errorf("failed to build achievement %s: %w", rule.Code, err)
		}

		isNew, err := achievementStore.Award(ctx, achievement)
		if err != nil {
			return fmt.Errorf("failed to award achievement %s: %w", rule.Code, err)
		}
		if isNew {
			awarded++
			log.Info("achievement awarded", "code", rule.Code)
		}
	}

	log.Debug("achievement evaluation finished",
		"total_words", counts.Total,
		"mastered_words", counts.Mastered,
		"newly_awarded", awarded)
	return nil
}
