package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// PostgresAchievementStore implements the store.AchievementStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAchievementStore creates a new PostgreSQL implementation of the AchievementStore interface.
func NewPostgresAchievementStore(db store.DBTX, logger *slog.Logger) *PostgresAchievementStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure PostgresAchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*PostgresAchievementStore)(nil)

// WithTx implements store.AchievementStore.WithTx
func (s *PostgresAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &PostgresAchievementStore{
		db:     tx,
		logger: s.logger,
	}
}

// Award implements store.AchievementStore.Award
// The unique (user_id, code) constraint plus ON CONFLICT DO NOTHING makes
// awards idempotent without a separate existence check.
func (s *PostgresAchievementStore) Award(ctx context.Context, achievement *domain.Achievement) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := achievement.Validate(); err != nil {
		log.Warn("achievement validation failed during award",
			slog.String("error", err.Error()),
			slog.String("user_id", achievement.UserID.String()),
			slog.String("code", achievement.Code))
		return false, err
	}

	query := `
		INSERT INTO achievements (id, user_id, code, title, description, awarded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, code) DO NOTHING
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		achievement.ID,
		achievement.UserID,
		achievement.Code,
		achievement.Title,
		achievement.Description,
		achievement.AwardedAt,
	)
	if err != nil {
		log.Error("failed to award achievement",
			slog.String("error", err.Error()),
			slog.String("user_id", achievement.UserID.String()),
			slog.String("code", achievement.Code))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()))
		return false, err
	}

	if rowsAffected == 0 {
		log.Debug("achievement already awarded",
			slog.String("user_id", achievement.UserID.String()),
			slog.String("code", achievement.Code))
		return false, nil
	}

	log.Info("achievement awarded",
		slog.String("user_id", achievement.UserID.String()),
		slog.String("code", achievement.Code))
	return true, nil
}

// ListByUser implements store.AchievementStore.ListByUser
// Returns an empty slice if the user has no achievements.
func (s *PostgresAchievementStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Achievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, code, title, description, awarded_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY awarded_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query achievements",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	achievements := []*domain.Achievement{}
	for rows.Next() {
		var a domain.Achievement
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Code,
			&a.Title,
			&a.Description,
			&a.AwardedAt,
		)
		if err != nil {
			log.Error("failed to scan achievement row",
				slog.String("error", err.Error()))
			return nil, err
		}
		achievements = append(achievements, &a)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return achievements, nil
}
