package task

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/store"
)

// mockVocabularyStore is a configurable in-package stub of store.VocabularyStore
// used by task tests. Only CountByTier matters to achievement evaluation;
// the remaining methods satisfy the interface.
type mockVocabularyStore struct {
	CountByTierFunc func(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error)
}

var _ store.VocabularyStore = (*mockVocabularyStore)(nil)

func (m *mockVocabularyStore) Create(ctx context.Context, item *domain.VocabularyItem) error {
	return nil
}

func (m *mockVocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error) {
	return nil, store.ErrItemNotFound
}

func (m *mockVocabularyStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VocabularyItem, error) {
	return nil, store.ErrItemNotFound
}

func (m *mockVocabularyStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	filter store.ItemFilter,
) ([]*domain.VocabularyItem, error) {
	return nil, nil
}

func (m *mockVocabularyStore) UpdateMetadata(ctx context.Context, item *domain.VocabularyItem) error {
	return nil
}

func (m *mockVocabularyStore) UpdateWithVersion(ctx context.Context, item *domain.VocabularyItem) error {
	return nil
}

func (m *mockVocabularyStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

func (m *mockVocabularyStore) CountByTier(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error) {
	if m.CountByTierFunc != nil {
		return m.CountByTierFunc(ctx, userID)
	}
	return &domain.TierCounts{}, nil
}

func (m *mockVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return m
}

// mockAchievementStore records awards in memory.
type mockAchievementStore struct {
	AwardFunc func(ctx context.Context, a *domain.Achievement) (bool, error)
	Awarded   []*domain.Achievement
}

var _ store.AchievementStore = (*mockAchievementStore)(nil)

func (m *mockAchievementStore) Award(ctx context.Context, a *domain.Achievement) (bool, error) {
	if m.AwardFunc != nil {
		return m.AwardFunc(ctx, a)
	}
	for _, existing := range m.Awarded {
		if existing.UserID == a.UserID && existing.Code == a.Code {
			return false, nil
		}
	}
	m.Awarded = append(m.Awarded, a)
	return true, nil
}

func (m *mockAchievementStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	return m.Awarded, nil
}

func (m *mockAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return m
}
