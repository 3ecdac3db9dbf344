package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// AchievementStore defines the interface for achievement persistence.
type AchievementStore interface {
	// Award saves an achievement for a user. Awarding is idempotent:
	// if the user already holds the achievement code, the call is a no-op
	// and returns (false, nil). Returns (true, nil) when a new award
	// was recorded.
	Award(ctx context.Context, achievement *domain.Achievement) (bool, error)

	// ListByUser retrieves all achievements awarded to the given user,
	// most recent first. Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)

	// WithTx returns a new AchievementStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
