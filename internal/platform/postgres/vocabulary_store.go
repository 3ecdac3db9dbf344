package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/store"
)

// vocabularyColumns is the canonical column list shared by all SELECTs.
const vocabularyColumns = `id, user_id, term, translation, context, notes, tier,
	review_count, correct_count, incorrect_count, last_reviewed_at, version,
	created_at, updated_at`

// PostgresVocabularyStore implements the store.VocabularyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a new PostgreSQL implementation of the VocabularyStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// Ensure PostgresVocabularyStore implements store.VocabularyStore interface
var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

// WithTx implements store.VocabularyStore.WithTx
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.VocabularyStore.Create
// It saves a new vocabulary item to the database, handling domain validation.
// Returns store.ErrTermExists if the user already has the case-folded term.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key violation).
func (s *PostgresVocabularyStore) Create(ctx context.Context, item *domain.VocabularyItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("vocabulary item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO vocabulary_items (id, user_id, term, translation, context, notes,
			tier, review_count, correct_count, incorrect_count, last_reviewed_at,
			version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.Term,
		item.Translation,
		item.Context,
		item.Notes,
		item.Tier,
		item.ReviewCount,
		item.CorrectCount,
		item.IncorrectCount,
		item.LastReviewedAt,
		item.Version,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate term during vocabulary item creation",
				slog.String("item_id", item.ID.String()),
				slog.String("user_id", item.UserID.String()),
				slog.String("term", item.Term))
			return fmt.Errorf("%w: %v", store.ErrTermExists, err)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during vocabulary item creation",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()),
				slog.String("user_id", item.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, item.UserID)
		}

		log.Error("failed to create vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()),
			slog.String("user_id", item.UserID.String()))
		return MapError(err)
	}

	log.Info("vocabulary item created successfully",
		slog.String("item_id", item.ID.String()),
		slog.String("user_id", item.UserID.String()),
		slog.String("term", item.Term))
	return nil
}

// GetByID implements store.VocabularyStore.GetByID
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresVocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving vocabulary item by ID", slog.String("item_id", id.String()))

	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_items
		WHERE id = $1
	`, vocabularyColumns)

	item, err := s.scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary item not found", slog.String("item_id", id.String()))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get vocabulary item by ID",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, err
	}

	return item, nil
}

// GetForUser implements store.VocabularyStore.GetForUser
// Returns store.ErrItemNotFound if the item does not exist or belongs to a
// different user. Both cases look the same to the caller so item IDs cannot
// be probed across accounts.
func (s *PostgresVocabularyStore) GetForUser(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_items
		WHERE id = $1 AND user_id = $2
	`, vocabularyColumns)

	item, err := s.scanItem(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary item not found for user",
				slog.String("item_id", id.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get vocabulary item for user",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, err
	}

	return item, nil
}

// ListByUser implements store.VocabularyStore.ListByUser
// It retrieves items owned by the user, newest first, narrowed by the filter.
// Returns an empty slice if no items match.
func (s *PostgresVocabularyStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_items
		WHERE user_id = $1
	`, vocabularyColumns)
	args := []any{userID}

	if filter.Tier != nil {
		args = append(args, *filter.Tier)
		query += fmt.Sprintf(" AND tier = $%d", len(args))
	}

	query += " ORDER BY last_reviewed_at DESC NULLS LAST, created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query vocabulary items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.VocabularyItem{}
	for rows.Next() {
		item, err := s.scanItem(rows)
		if err != nil {
			log.Error("failed to scan vocabulary item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed vocabulary items",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(items)))
	return items, nil
}

// UpdateMetadata implements store.VocabularyStore.UpdateMetadata
// It saves changes to the item's descriptive fields only. Review counters,
// tier, version, and the review timestamp are never touched here.
// Returns store.ErrItemNotFound if the item does not exist.
// Returns store.ErrTermExists if renaming collides with another of the user's terms.
func (s *PostgresVocabularyStore) UpdateMetadata(ctx context.Context, item *domain.VocabularyItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("vocabulary item validation failed during metadata update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		UPDATE vocabulary_items
		SET term = $1, translation = $2, context = $3, notes = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Term,
		item.Translation,
		item.Context,
		item.Notes,
		time.Now().UTC(),
		item.ID,
		item.UserID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate term during metadata update",
				slog.String("item_id", item.ID.String()),
				slog.String("term", item.Term))
			return fmt.Errorf("%w: %v", store.ErrTermExists, err)
		}
		log.Error("failed to update vocabulary item metadata",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("vocabulary item not found for metadata update",
			slog.String("item_id", item.ID.String()))
		return store.ErrItemNotFound
	}

	log.Info("vocabulary item metadata updated successfully",
		slog.String("item_id", item.ID.String()))
	return nil
}

// UpdateWithVersion implements store.VocabularyStore.UpdateWithVersion
// It persists the full item state with an optimistic concurrency check.
// The single UPDATE statement only matches the row when it still carries
// item.Version, so concurrent writers cannot silently overwrite each other.
// Returns store.ErrConflict when the version check fails while the row
// exists, and store.ErrItemNotFound when the row is gone.
func (s *PostgresVocabularyStore) UpdateWithVersion(ctx context.Context, item *domain.VocabularyItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("vocabulary item validation failed during versioned update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		UPDATE vocabulary_items
		SET tier = $1, review_count = $2, correct_count = $3, incorrect_count = $4,
			last_reviewed_at = $5, updated_at = $6, version = version + 1
		WHERE id = $7 AND version = $8
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Tier,
		item.ReviewCount,
		item.CorrectCount,
		item.IncorrectCount,
		item.LastReviewedAt,
		item.UpdatedAt,
		item.ID,
		item.Version,
	)

	if err != nil {
		log.Error("failed to update vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a stale version from a deleted row.
		var exists bool
		checkErr := s.db.QueryRowContext(
			ctx,
			"SELECT EXISTS (SELECT 1 FROM vocabulary_items WHERE id = $1)",
			item.ID,
		).Scan(&exists)
		if checkErr != nil {
			log.Error("failed to check item existence after version mismatch",
				slog.String("error", checkErr.Error()),
				slog.String("item_id", item.ID.String()))
			return checkErr
		}

		if !exists {
			log.Debug("vocabulary item not found for versioned update",
				slog.String("item_id", item.ID.String()))
			return store.ErrItemNotFound
		}

		log.Debug("version conflict on vocabulary item update",
			slog.String("item_id", item.ID.String()),
			slog.Int("expected_version", item.Version))
		return store.ErrConflict
	}

	log.Debug("vocabulary item updated",
		slog.String("item_id", item.ID.String()),
		slog.String("tier", string(item.Tier)),
		slog.Int("review_count", item.ReviewCount))
	return nil
}

// Delete implements store.VocabularyStore.Delete
// Returns store.ErrItemNotFound if the item does not exist or belongs to a
// different user.
func (s *PostgresVocabularyStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM vocabulary_items
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("vocabulary item not found for delete",
			slog.String("item_id", id.String()),
			slog.String("user_id", userID.String()))
		return store.ErrItemNotFound
	}

	log.Info("vocabulary item deleted successfully",
		slog.String("item_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// CountByTier implements store.VocabularyStore.CountByTier
// It returns the user's item counts per proficiency tier in a single query.
func (s *PostgresVocabularyStore) CountByTier(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE tier = 'learning'),
			COUNT(*) FILTER (WHERE tier = 'familiar'),
			COUNT(*) FILTER (WHERE tier = 'mastered')
		FROM vocabulary_items
		WHERE user_id = $1
	`

	var counts domain.TierCounts
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&counts.Total,
		&counts.Learning,
		&counts.Familiar,
		&counts.Mastered,
	)
	if err != nil {
		log.Error("failed to count vocabulary items by tier",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &counts, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps one result row onto a domain.VocabularyItem.
func (s *PostgresVocabularyStore) scanItem(row rowScanner) (*domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	var tier string
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Term,
		&item.Translation,
		&item.Context,
		&item.Notes,
		&tier,
		&item.ReviewCount,
		&item.CorrectCount,
		&item.IncorrectCount,
		&lastReviewedAt,
		&item.Version,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Tier = domain.Tier(tier)
	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time.UTC()
		item.LastReviewedAt = &t
	}

	return &item, nil
}
