package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tier represents the proficiency classification of a vocabulary item.
type Tier string

// Proficiency tiers, in canonical progression order. A tier never moves
// backwards: learning -> familiar -> mastered.
const (
	TierLearning Tier = "learning"
	TierFamiliar Tier = "familiar"
	TierMastered Tier = "mastered"
)

// Common validation errors for VocabularyItem
var (
	ErrEmptyItemID      = errors.New("vocabulary item ID cannot be empty")
	ErrEmptyItemUserID  = errors.New("vocabulary item user ID cannot be empty")
	ErrEmptyTerm        = errors.New("vocabulary term cannot be empty")
	ErrNegativeCount    = errors.New("review counters must be non-negative")
	ErrCountMismatch    = errors.New("correct and incorrect counts must sum to review count")
	ErrInvalidItemTier  = errors.New("vocabulary item tier is not a valid tier")
	ErrNegativeVersion  = errors.New("item version must be non-negative")
)

// ParseTier converts a string into a Tier.
// Returns ErrInvalidTier if the value is not a recognized tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(s)) {
	case TierLearning:
		return TierLearning, nil
	case TierFamiliar:
		return TierFamiliar, nil
	case TierMastered:
		return TierMastered, nil
	default:
		return "", ErrInvalidTier
	}
}

// IsValid reports whether the tier is one of the recognized values.
func (t Tier) IsValid() bool {
	switch t {
	case TierLearning, TierFamiliar, TierMastered:
		return true
	default:
		return false
	}
}

// rank orders tiers along the canonical progression. Used to enforce
// that a tier never regresses.
func (t Tier) rank() int {
	switch t {
	case TierLearning:
		return 0
	case TierFamiliar:
		return 1
	case TierMastered:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether t is equal to or further along the progression
// than other.
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() >= other.rank()
}

// VocabularyItem is one learner's record of a single normalized term,
// together with its review history counters and proficiency tier.
// The term is case-folded on creation and unique per (UserID, Term).
type VocabularyItem struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Term           string     `json:"term"`
	Translation    string     `json:"translation"`
	Context        string     `json:"context"`
	Notes          string     `json:"notes"`
	Tier           Tier       `json:"tier"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"` // nil until the first recorded outcome
	Version        int        `json:"-"`                // optimistic concurrency counter, storage concern
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewVocabularyItem creates a vocabulary item for the given owner and term.
// The term is case-folded so that lookups and the per-owner uniqueness
// constraint are case-insensitive. New items start in the learning tier
// with zeroed counters and no review timestamp.
func NewVocabularyItem(userID uuid.UUID, term, translation, context, notes string) (*VocabularyItem, error) {
	now := time.Now().UTC()
	item := &VocabularyItem{
		ID:          uuid.New(),
		UserID:      userID,
		Term:        NormalizeTerm(term),
		Translation: translation,
		Context:     context,
		Notes:       notes,
		Tier:        TierLearning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateMetadata replaces the item's descriptive fields. The term is
// case-folded the same way as on creation. Review counters, the tier,
// and the review timestamp are untouched.
func (v *VocabularyItem) UpdateMetadata(term, translation, context, notes string) error {
	normalized := NormalizeTerm(term)
	if normalized == "" {
		return ErrEmptyTerm
	}

	v.Term = normalized
	v.Translation = translation
	v.Context = context
	v.Notes = notes
	v.UpdatedAt = time.Now().UTC()
	return nil
}

// NormalizeTerm canonicalizes a term for storage and comparison.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Validate checks if the VocabularyItem has valid data.
// Returns an error if any field fails validation.
func (v *VocabularyItem) Validate() error {
	if v.ID == uuid.Nil {
		return ErrEmptyItemID
	}

	if v.UserID == uuid.Nil {
		return ErrEmptyItemUserID
	}

	if v.Term == "" {
		return ErrEmptyTerm
	}

	if !v.Tier.IsValid() {
		return ErrInvalidItemTier
	}

	if v.ReviewCount < 0 || v.CorrectCount < 0 || v.IncorrectCount < 0 {
		return ErrNegativeCount
	}

	if v.CorrectCount+v.IncorrectCount != v.ReviewCount {
		return ErrCountMismatch
	}

	if v.Version < 0 {
		return ErrNegativeVersion
	}

	return nil
}

// Clone returns a deep copy of the item. Review updates follow an
// immutable pattern: the recorder copies, mutates the copy, and persists
// it with a compare-and-swap, so the original stays untouched on failure.
func (v *VocabularyItem) Clone() *VocabularyItem {
	clone := *v
	if v.LastReviewedAt != nil {
		t := *v.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	return &clone
}

// TierCounts summarizes a learner's vocabulary pool by proficiency tier.
type TierCounts struct {
	Total    int `json:"total"`
	Learning int `json:"learning"`
	Familiar int `json:"familiar"`
	Mastered int `json:"mastered"`
}
