package mastery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		reviews  int
		correct  int
		current  domain.Tier
		expected domain.Tier
	}{
		{
			name:     "new item with no reviews keeps learning",
			reviews:  0,
			correct:  0,
			current:  domain.TierLearning,
			expected: domain.TierLearning,
		},
		{
			name:     "perfect rate over five reviews reaches mastered",
			reviews:  5,
			correct:  5,
			current:  domain.TierFamiliar,
			expected: domain.TierMastered,
		},
		{
			name:     "75 percent over four reviews reaches familiar",
			reviews:  4,
			correct:  3,
			current:  domain.TierLearning,
			expected: domain.TierFamiliar,
		},
		{
			name:     "perfect rate but only two reviews stays learning",
			reviews:  2,
			correct:  2,
			current:  domain.TierLearning,
			expected: domain.TierLearning,
		},
		{
			name:     "90 percent exactly at five reviews is mastered",
			reviews:  10,
			correct:  9,
			current:  domain.TierLearning,
			expected: domain.TierMastered,
		},
		{
			name:     "just under 90 percent with many reviews is familiar",
			reviews:  10,
			correct:  8,
			current:  domain.TierLearning,
			expected: domain.TierFamiliar,
		},
		{
			name:     "70 percent exactly at three reviews is familiar",
			reviews:  10,
			correct:  7,
			current:  domain.TierLearning,
			expected: domain.TierFamiliar,
		},
		{
			name:     "poor rate never downgrades mastered",
			reviews:  20,
			correct:  5,
			current:  domain.TierMastered,
			expected: domain.TierMastered,
		},
		{
			name:     "familiar rate never downgrades mastered",
			reviews:  10,
			correct:  8,
			current:  domain.TierMastered,
			expected: domain.TierMastered,
		},
		{
			name:     "poor rate never downgrades familiar",
			reviews:  10,
			correct:  2,
			current:  domain.TierFamiliar,
			expected: domain.TierFamiliar,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.reviews, tc.correct, tc.current, params)

			if got != tc.expected {
				t.Errorf("Expected tier %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	first := classify(7, 6, domain.TierLearning, params)
	second := classify(7, 6, domain.TierLearning, params)

	if first != second {
		t.Errorf("classify is not idempotent: %q vs %q", first, second)
	}
}

func TestApplyOutcome(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	item := &domain.VocabularyItem{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Term:         "bonjour",
		Tier:         domain.TierLearning,
		ReviewCount:  2,
		CorrectCount: 2,
		CreatedAt:    now.Add(-48 * time.Hour),
		UpdatedAt:    now.Add(-48 * time.Hour),
	}

	next := applyOutcome(item, true, now, params)

	if next.ReviewCount != 3 {
		t.Errorf("Expected review count 3, got %d", next.ReviewCount)
	}
	if next.CorrectCount != 3 {
		t.Errorf("Expected correct count 3, got %d", next.CorrectCount)
	}
	if next.IncorrectCount != 0 {
		t.Errorf("Expected incorrect count 0, got %d", next.IncorrectCount)
	}
	if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
		t.Errorf("Expected last reviewed at %v, got %v", now, next.LastReviewedAt)
	}
	if next.Tier != domain.TierFamiliar {
		t.Errorf("Expected tier familiar after 3/3, got %q", next.Tier)
	}

	// Counter invariant holds after the update.
	if next.CorrectCount+next.IncorrectCount != next.ReviewCount {
		t.Errorf("Counter invariant violated: %d + %d != %d",
			next.CorrectCount, next.IncorrectCount, next.ReviewCount)
	}

	// The original item is untouched.
	if item.ReviewCount != 2 || item.LastReviewedAt != nil {
		t.Error("applyOutcome mutated its input")
	}
}

func TestApplyOutcomeIncorrect(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	item := &domain.VocabularyItem{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Term:           "merci",
		Tier:           domain.TierLearning,
		ReviewCount:    4,
		CorrectCount:   2,
		IncorrectCount: 2,
	}

	next := applyOutcome(item, false, now, params)

	if next.ReviewCount != 5 || next.IncorrectCount != 3 || next.CorrectCount != 2 {
		t.Errorf("Unexpected counters after incorrect outcome: %d/%d/%d",
			next.ReviewCount, next.CorrectCount, next.IncorrectCount)
	}
	if next.Tier != domain.TierLearning {
		t.Errorf("Expected tier learning at 40 percent, got %q", next.Tier)
	}
}

func TestMasteredIsMonotonic(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	item := &domain.VocabularyItem{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Term:         "gracias",
		Tier:         domain.TierMastered,
		ReviewCount:  10,
		CorrectCount: 9,
	}

	// A long run of failures must never move the item out of mastered.
	for i := 0; i < 50; i++ {
		item = applyOutcome(item, false, now.Add(time.Duration(i)*time.Hour), params)
		if item.Tier != domain.TierMastered {
			t.Fatalf("Tier downgraded to %q after %d failed reviews", item.Tier, i+1)
		}
	}
}
