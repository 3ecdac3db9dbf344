package practice

import (
	"context"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// MockPracticeService is a mock implementation of the PracticeService
// interface for testing handlers and other consumers.
type MockPracticeService struct {
	SelectBatchFunc   func(ctx context.Context, userID uuid.UUID, filterTier *domain.Tier, limit int) ([]*domain.VocabularyItem, error)
	RecordOutcomeFunc func(ctx context.Context, userID, itemID uuid.UUID, outcome ReviewOutcome) (*RecordResult, error)
	RecommendedFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.VocabularyItem, error)
	StatsFunc         func(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error)
	NextDueAtFunc     func(ctx context.Context, userID, itemID uuid.UUID) (*DueInfo, error)
}

// Ensure MockPracticeService implements PracticeService interface
var _ PracticeService = (*MockPracticeService)(nil)

// SelectBatch implements PracticeService.SelectBatch.
func (m *MockPracticeService) SelectBatch(
	ctx context.Context,
	userID uuid.UUID,
	filterTier *domain.Tier,
	limit int,
) ([]*domain.VocabularyItem, error) {
	if m.SelectBatchFunc != nil {
		return m.SelectBatchFunc(ctx, userID, filterTier, limit)
	}
	return []*domain.VocabularyItem{}, nil
}

// RecordOutcome implements PracticeService.RecordOutcome.
func (m *MockPracticeService) RecordOutcome(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	outcome ReviewOutcome,
) (*RecordResult, error) {
	if m.RecordOutcomeFunc != nil {
		return m.RecordOutcomeFunc(ctx, userID, itemID, outcome)
	}
	return nil, ErrItemNotFound
}

// Recommended implements PracticeService.Recommended.
func (m *MockPracticeService) Recommended(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.VocabularyItem, error) {
	if m.RecommendedFunc != nil {
		return m.RecommendedFunc(ctx, userID)
	}
	return []*domain.VocabularyItem{}, nil
}

// Stats implements PracticeService.Stats.
func (m *MockPracticeService) Stats(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, userID)
	}
	return &domain.TierCounts{}, nil
}

// NextDueAt implements PracticeService.NextDueAt.
func (m *MockPracticeService) NextDueAt(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
) (*DueInfo, error) {
	if m.NextDueAtFunc != nil {
		return m.NextDueAtFunc(ctx, userID, itemID)
	}
	return nil, ErrItemNotFound
}
