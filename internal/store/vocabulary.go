package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// ItemFilter narrows ListByUser results. The zero value matches everything.
type ItemFilter struct {
	// Tier restricts results to a single proficiency tier when non-nil.
	Tier *domain.Tier
	// Limit caps the number of returned items; 0 means no cap.
	Limit int
	// Offset skips that many items for pagination.
	Offset int
}

// VocabularyStore defines the interface for vocabulary item persistence.
type VocabularyStore interface {
	// Create saves a new vocabulary item to the store.
	// It handles domain validation internally.
	// Returns ErrTermExists if the user already has an item with the same
	// case-folded term.
	Create(ctx context.Context, item *domain.VocabularyItem) error

	// GetByID retrieves an item by its unique ID, regardless of owner.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error)

	// GetForUser retrieves an item by ID, scoped to the given owner.
	// Returns ErrItemNotFound if the item does not exist or belongs to
	// a different user.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VocabularyItem, error)

	// ListByUser retrieves all items owned by the given user, most
	// recently reviewed first (never-reviewed items last, newest first),
	// narrowed by the filter.
	// Returns an empty slice if the user has no matching items.
	ListByUser(ctx context.Context, userID uuid.UUID, filter ItemFilter) ([]*domain.VocabularyItem, error)

	// UpdateMetadata saves changes to an item's descriptive fields (term,
	// translation, context, notes). It never touches review counters, the
	// tier, or the review timestamp.
	// Returns ErrItemNotFound if the item does not exist.
	// Returns ErrTermExists if renaming collides with another of the
	// user's terms.
	UpdateMetadata(ctx context.Context, item *domain.VocabularyItem) error

	// UpdateWithVersion persists a full item state with an optimistic
	// concurrency check: the write only applies if the stored row still
	// carries item.Version, and increments the version on success.
	// Returns ErrConflict if the version check fails while the row exists,
	// and ErrItemNotFound if the row is gone.
	UpdateWithVersion(ctx context.Context, item *domain.VocabularyItem) error

	// Delete removes an item owned by the given user.
	// Returns ErrItemNotFound if the item does not exist or belongs to
	// a different user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// CountByTier returns the user's item counts per proficiency tier.
	CountByTier(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error)

	// WithTx returns a new VocabularyStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) VocabularyStore
}
