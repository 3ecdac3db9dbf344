package mastery

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

func TestServiceApplyOutcome(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil item is rejected", func(t *testing.T) {
		_, err := svc.ApplyOutcome(nil, true, now)

		if !errors.Is(err, ErrNilItem) {
			t.Errorf("Expected ErrNilItem, got %v", err)
		}
	})

	t.Run("returned item passes validation", func(t *testing.T) {
		item := &domain.VocabularyItem{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Term:        "hola",
			Translation: "hello",
			Tier:        domain.TierLearning,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		next, err := svc.ApplyOutcome(item, true, now)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := next.Validate(); err != nil {
			t.Errorf("Updated item failed validation: %v", err)
		}
	})
}

func TestServiceIsDue(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil item is never due", func(t *testing.T) {
		if svc.IsDue(nil, now) {
			t.Error("Expected nil item to not be due")
		}
	})

	t.Run("uses the item's own tier interval", func(t *testing.T) {
		last := now.Add(-5 * time.Hour)
		item := &domain.VocabularyItem{
			Tier:           domain.TierFamiliar,
			LastReviewedAt: &last,
		}

		// 5h ago: past the learning interval but well inside familiar's 24h.
		if svc.IsDue(item, now) {
			t.Error("Expected familiar item reviewed 5h ago to not be due")
		}

		item.Tier = domain.TierLearning
		if !svc.IsDue(item, now) {
			t.Error("Expected learning item reviewed 5h ago to be due")
		}
	})
}

func TestServiceWithCustomParams(t *testing.T) {
	t.Parallel()
	svc := NewServiceWithParams(NewParams(ParamsConfig{
		FamiliarMinRate:    0.50,
		FamiliarMinReviews: 2,
		LearningInterval:   time.Minute,
	}))
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	item := &domain.VocabularyItem{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Term:           "danke",
		Tier:           domain.TierLearning,
		ReviewCount:    1,
		CorrectCount:   0,
		IncorrectCount: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	next, err := svc.ApplyOutcome(item, true, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if next.Tier != domain.TierFamiliar {
		t.Errorf("Expected familiar under relaxed thresholds, got %q", next.Tier)
	}

	due := svc.NextDueAt(next, now)
	if !due.Equal(now.Add(time.Minute)) {
		t.Errorf("Expected next due %v, got %v", now.Add(time.Minute), due)
	}
}
