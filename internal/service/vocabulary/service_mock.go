package vocabulary

import (
	"context"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
)

// MockVocabularyService is a mock implementation of the VocabularyService
// interface for testing handlers and other consumers.
type MockVocabularyService struct {
	CreateFunc         func(ctx context.Context, userID uuid.UUID, input CreateItemInput) (*domain.VocabularyItem, error)
	GetFunc            func(ctx context.Context, userID, itemID uuid.UUID) (*domain.VocabularyItem, error)
	ListFunc           func(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*domain.VocabularyItem, error)
	UpdateMetadataFunc func(ctx context.Context, userID, itemID uuid.UUID, input UpdateItemInput) (*domain.VocabularyItem, error)
	DeleteFunc         func(ctx context.Context, userID, itemID uuid.UUID) error
}

// Ensure MockVocabularyService implements VocabularyService interface
var _ VocabularyService = (*MockVocabularyService)(nil)

// Create implements VocabularyService.Create.
func (m *MockVocabularyService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateItemInput,
) (*domain.VocabularyItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, input)
	}
	return domain.NewVocabularyItem(userID, input.Term, input.Translation, input.Context, input.Notes)
}

// Get implements VocabularyService.Get.
func (m *MockVocabularyService) Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.VocabularyItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, itemID)
	}
	return nil, ErrItemNotFound
}

// List implements VocabularyService.List.
func (m *MockVocabularyService) List(
	ctx context.Context,
	userID uuid.UUID,
	filter ListFilter,
) ([]*domain.VocabularyItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return []*domain.VocabularyItem{}, nil
}

// UpdateMetadata implements VocabularyService.UpdateMetadata.
func (m *MockVocabularyService) UpdateMetadata(
	ctx context.Context,
	userID uuid.UUID,
	itemID uuid.UUID,
	input UpdateItemInput,
) (*domain.VocabularyItem, error) {
	if m.UpdateMetadataFunc != nil {
		return m.UpdateMetadataFunc(ctx, userID, itemID, input)
	}
	return nil, ErrItemNotFound
}

// Delete implements VocabularyService.Delete.
func (m *MockVocabularyService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, itemID)
	}
	return ErrItemNotFound
}
