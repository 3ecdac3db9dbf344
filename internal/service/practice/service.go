package practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// ReviewOutcome represents a user's answer to a practice prompt.
type ReviewOutcome struct {
	Correct bool `json:"correct"` // Whether the learner answered correctly
}

// RecordResult is the outcome of recording a review: the updated item and
// whether the recording promoted it to a higher tier.
type RecordResult struct {
	Item         *domain.VocabularyItem `json:"item"`
	TierChanged  bool                   `json:"tier_changed"`
	PreviousTier domain.Tier            `json:"previous_tier"`
}

// PracticeService provides practice session assembly and review recording
// for the vocabulary mastery engine.
type PracticeService interface {
	// SelectBatch assembles a practice batch for a user: due items only,
	// least recently reviewed first, never-reviewed items ahead of
	// everything else, ties broken randomly.
	//
	// A non-nil filterTier restricts the batch to that tier; an
	// unrecognized tier is rejected with ErrInvalidTier.
	//
	// A limit of 0 applies the configured default batch size. Negative
	// limits are rejected with ErrInvalidLimit.
	//
	// Returns an empty slice when nothing is due.
	SelectBatch(
		ctx context.Context,
		userID uuid.UUID,
		filterTier *domain.Tier,
		limit int,
	) ([]*domain.VocabularyItem, error)

	// RecordOutcome records one review outcome for an item owned by the
	// user: counters increment, the review timestamp moves to now, and the
	// item's tier is reclassified (never downgraded).
	//
	// The update is atomic under concurrent reviews of the same item. When
	// a concurrent writer wins the race, the recording is retried against
	// fresh state; ErrConflictRetriesExhausted is returned if contention
	// persists.
	//
	// Returns ErrItemNotFound if the item does not exist or is not owned
	// by the user; the two cases are not distinguished.
	RecordOutcome(
		ctx context.Context,
		userID uuid.UUID,
		itemID uuid.UUID,
		outcome ReviewOutcome,
	) (*RecordResult, error)

	// Recommended returns up to 20 due, non-mastered items for a user,
	// ordered the same way as SelectBatch. Used by the review dashboard
	// to suggest what to practice next.
	Recommended(ctx context.Context, userID uuid.UUID) ([]*domain.VocabularyItem, error)

	// Stats returns the user's vocabulary pool summarized by tier.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error)

	// NextDueAt returns when the given item becomes eligible for practice
	// again. Items never reviewed are due immediately.
	NextDueAt(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*DueInfo, error)
}

// DueInfo describes an item's practice eligibility.
type DueInfo struct {
	ItemID uuid.UUID `json:"item_id"`
	Due    bool      `json:"due"`
	DueAt  string    `json:"due_at"` // RFC 3339
}

// Common error types for PracticeService
var (
	// ErrItemNotFound indicates that the item does not exist or is not
	// owned by the requesting user.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrInvalidLimit indicates a negative batch limit was requested.
	ErrInvalidLimit = errors.New("batch limit must not be negative")

	// ErrInvalidTier indicates an unrecognized tier filter was requested.
	ErrInvalidTier = errors.New("unrecognized tier filter")

	// ErrConflictRetriesExhausted indicates the review could not be
	// recorded because concurrent updates kept winning the race.
	ErrConflictRetriesExhausted = errors.New("review conflicts with concurrent updates")
)

// ServiceError wraps errors from the practice service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "select_batch", "record_outcome")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordOutcomeError returns a new ServiceError for the record_outcome operation.
func NewRecordOutcomeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_outcome",
		Message:   message,
		Err:       err,
	}
}

// NewSelectBatchError returns a new ServiceError for the select_batch operation.
func NewSelectBatchError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "select_batch",
		Message:   message,
		Err:       err,
	}
}
