// Package vocabulary implements the lifecycle of a learner's vocabulary
// pool: adding terms, browsing and editing them, and removing them.
// Review recording and practice scheduling live in the practice service;
// this package never touches counters or tiers.
package vocabulary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// CreateItemInput carries the caller-supplied fields for a new item.
type CreateItemInput struct {
	Term        string
	Translation string
	Context     string
	Notes       string
}

// UpdateItemInput carries the descriptive fields an item edit may change.
type UpdateItemInput struct {
	Term        string
	Translation string
	Context     string
	Notes       string
}

// ListFilter narrows List results. The zero value matches everything.
type ListFilter struct {
	Tier   *domain.Tier
	Limit  int
	Offset int
}

// VocabularyService provides vocabulary item management for the owner.
// Every operation is scoped to the given user; items belonging to other
// users are indistinguishable from missing ones.
type VocabularyService interface {
	// Create adds a new term to the user's pool. The term is case-folded;
	// a term the user already has is rejected with ErrDuplicateTerm.
	Create(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*domain.VocabularyItem, error)

	// Get retrieves one of the user's items.
	// Returns ErrItemNotFound if the item does not exist or is not owned
	// by the user.
	Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.VocabularyItem, error)

	// List retrieves the user's items, most recently reviewed first,
	// narrowed by the filter. An unrecognized tier filter is rejected
	// with ErrInvalidTier.
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*domain.VocabularyItem, error)

	// UpdateMetadata edits an item's descriptive fields (term,
	// translation, context, notes). Review counters, the tier, and the
	// review timestamp are never changed here. Renaming onto another of
	// the user's terms is rejected with ErrDuplicateTerm.
	UpdateMetadata(
		ctx context.Context,
		userID uuid.UUID,
		itemID uuid.UUID,
		input UpdateItemInput,
	) (*domain.VocabularyItem, error)

	// Delete removes one of the user's items. Deletion is terminal: the
	// review history goes with the item.
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// Common error types for VocabularyService
var (
	// ErrItemNotFound indicates that the item does not exist or is not
	// owned by the requesting user.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrDuplicateTerm indicates the user already has an item with the
	// same case-folded term.
	ErrDuplicateTerm = errors.New("term already exists for this user")

	// ErrInvalidTier indicates an unrecognized tier filter was requested.
	ErrInvalidTier = errors.New("unrecognized tier filter")
)

// ServiceError wraps errors from the vocabulary service with additional
// context, so consumers can differentiate failures with errors.As instead
// of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_item", "list_items")
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

// newServiceError wraps err with operation context.
func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
