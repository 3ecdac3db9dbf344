package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewVocabularyItem(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	t.Run("creates a learning item with zeroed counters", func(t *testing.T) {
		item, err := NewVocabularyItem(userID, "Bonjour", "hello", "greeting", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if item.Term != "bonjour" {
			t.Errorf("Expected case-folded term %q, got %q", "bonjour", item.Term)
		}
		if item.Tier != TierLearning {
			t.Errorf("Expected new item in learning tier, got %q", item.Tier)
		}
		if item.ReviewCount != 0 || item.CorrectCount != 0 || item.IncorrectCount != 0 {
			t.Errorf("Expected zeroed counters, got %d/%d/%d",
				item.ReviewCount, item.CorrectCount, item.IncorrectCount)
		}
		if item.LastReviewedAt != nil {
			t.Error("Expected nil LastReviewedAt on a new item")
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		item, err := NewVocabularyItem(userID, "  Guten Tag  ", "good day", "", "")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if item.Term != "guten tag" {
			t.Errorf("Expected %q, got %q", "guten tag", item.Term)
		}
	})

	t.Run("rejects empty term", func(t *testing.T) {
		_, err := NewVocabularyItem(userID, "   ", "x", "", "")

		if !errors.Is(err, ErrEmptyTerm) {
			t.Errorf("Expected ErrEmptyTerm, got %v", err)
		}
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := NewVocabularyItem(uuid.Nil, "hola", "hello", "", "")

		if !errors.Is(err, ErrEmptyItemUserID) {
			t.Errorf("Expected ErrEmptyItemUserID, got %v", err)
		}
	})
}

func TestVocabularyItemValidate(t *testing.T) {
	t.Parallel()

	valid := func() *VocabularyItem {
		return &VocabularyItem{
			ID:             uuid.New(),
			UserID:         uuid.New(),
			Term:           "obrigado",
			Tier:           TierFamiliar,
			ReviewCount:    4,
			CorrectCount:   3,
			IncorrectCount: 1,
			CreatedAt:      time.Now().UTC(),
			UpdatedAt:      time.Now().UTC(),
		}
	}

	testCases := []struct {
		name     string
		mutate   func(*VocabularyItem)
		expected error
	}{
		{
			name:     "valid item passes",
			mutate:   func(v *VocabularyItem) {},
			expected: nil,
		},
		{
			name:     "missing ID",
			mutate:   func(v *VocabularyItem) { v.ID = uuid.Nil },
			expected: ErrEmptyItemID,
		},
		{
			name:     "unknown tier",
			mutate:   func(v *VocabularyItem) { v.Tier = "fluent" },
			expected: ErrInvalidItemTier,
		},
		{
			name:     "negative counter",
			mutate:   func(v *VocabularyItem) { v.CorrectCount = -1 },
			expected: ErrNegativeCount,
		},
		{
			name:     "counters out of balance",
			mutate:   func(v *VocabularyItem) { v.CorrectCount = 4 },
			expected: ErrCountMismatch,
		},
		{
			name:     "negative version",
			mutate:   func(v *VocabularyItem) { v.Version = -1 },
			expected: ErrNegativeVersion,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := valid()
			tc.mutate(item)

			err := item.Validate()
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestVocabularyItemClone(t *testing.T) {
	t.Parallel()

	last := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	item := &VocabularyItem{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Term:           "arigatou",
		Tier:           TierMastered,
		ReviewCount:    6,
		CorrectCount:   6,
		LastReviewedAt: &last,
		Version:        3,
	}

	clone := item.Clone()
	clone.ReviewCount = 7
	*clone.LastReviewedAt = last.Add(time.Hour)

	if item.ReviewCount != 6 {
		t.Error("Clone shares counter state with the original")
	}
	if !item.LastReviewedAt.Equal(last) {
		t.Error("Clone shares LastReviewedAt pointer with the original")
	}
	if clone.Version != 3 {
		t.Errorf("Expected version carried over, got %d", clone.Version)
	}
}

func TestParseTier(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Tier
		wantErr  bool
	}{
		{input: "learning", expected: TierLearning},
		{input: "Familiar", expected: TierFamiliar},
		{input: "MASTERED", expected: TierMastered},
		{input: "expert", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTier(tc.input)

			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTier) {
					t.Errorf("Expected ErrInvalidTier, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTierAtLeast(t *testing.T) {
	t.Parallel()

	if !TierMastered.AtLeast(TierLearning) {
		t.Error("Expected mastered to be at least learning")
	}
	if !TierFamiliar.AtLeast(TierFamiliar) {
		t.Error("Expected a tier to be at least itself")
	}
	if TierLearning.AtLeast(TierFamiliar) {
		t.Error("Expected learning to not be at least familiar")
	}
}
