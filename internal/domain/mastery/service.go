package mastery

import (
	"errors"
	"time"

	"github.com/parla-app/parla-api/internal/domain"
)

// Common errors
var (
	ErrNilItem = errors.New("vocabulary item cannot be nil")
)

// Service defines the interface for mastery engine operations.
// Implementations are pure with respect to their inputs: they never
// mutate the given item, never touch storage, and never read the wall
// clock (the caller supplies now).
type Service interface {
	// ApplyOutcome computes the item state after one recorded outcome:
	// incremented counters, updated review timestamp, and the tier the
	// new history classifies to. Returns a new item, leaving the input
	// unmodified.
	ApplyOutcome(item *domain.VocabularyItem, correct bool, now time.Time) (*domain.VocabularyItem, error)

	// IsDue reports whether the item is eligible for re-practice at now,
	// using the minimum re-exposure interval of the item's own tier.
	IsDue(item *domain.VocabularyItem, now time.Time) bool

	// NextDueAt returns the earliest time the item becomes due again.
	NextDueAt(item *domain.VocabularyItem, now time.Time) time.Time
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new mastery service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new mastery service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyOutcome implements the Service interface.
func (s *defaultService) ApplyOutcome(
	item *domain.VocabularyItem,
	correct bool,
	now time.Time,
) (*domain.VocabularyItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	return applyOutcome(item, correct, now, s.params), nil
}

// IsDue implements the Service interface.
func (s *defaultService) IsDue(item *domain.VocabularyItem, now time.Time) bool {
	if item == nil {
		return false
	}

	return isDue(item.Tier, item.LastReviewedAt, now, s.params)
}

// NextDueAt implements the Service interface.
func (s *defaultService) NextDueAt(item *domain.VocabularyItem, now time.Time) time.Time {
	if item == nil {
		return now
	}

	return nextDueAt(item.Tier, item.LastReviewedAt, now, s.params)
}
