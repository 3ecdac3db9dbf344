package vocabulary

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/events"
	"github.com/parla-app/parla-api/internal/store"
)

// mockVocabularyStore implements store.VocabularyStore with injectable
// behavior for the methods the vocabulary service exercises.
type mockVocabularyStore struct {
	CreateFunc         func(ctx context.Context, item *domain.VocabularyItem) error
	GetForUserFunc     func(ctx context.Context, id, userID uuid.UUID) (*domain.VocabularyItem, error)
	ListByUserFunc     func(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) ([]*domain.VocabularyItem, error)
	UpdateMetadataFunc func(ctx context.Context, item *domain.VocabularyItem) error
	DeleteFunc         func(ctx context.Context, id, userID uuid.UUID) error
}

var _ store.VocabularyStore = (*mockVocabularyStore)(nil)

func (m *mockVocabularyStore) Create(ctx context.Context, item *domain.VocabularyItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *mockVocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyItem, error) {
	return nil, store.ErrItemNotFound
}

func (m *mockVocabularyStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.VocabularyItem, error) {
	if m.GetForUserFunc != nil {
		return m.GetForUserFunc(ctx, id, userID)
	}
	return nil, store.ErrItemNotFound
}

func (m *mockVocabularyStore) ListByUser(ctx context.Context, userID uuid.UUID, filter store.ItemFilter) ([]*domain.VocabularyItem, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, filter)
	}
	return []*domain.VocabularyItem{}, nil
}

func (m *mockVocabularyStore) UpdateMetadata(ctx context.Context, item *domain.VocabularyItem) error {
	if m.UpdateMetadataFunc != nil {
		return m.UpdateMetadataFunc(ctx, item)
	}
	return nil
}

func (m *mockVocabularyStore) UpdateWithVersion(ctx context.Context, item *domain.VocabularyItem) error {
	return nil
}

func (m *mockVocabularyStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockVocabularyStore) CountByTier(ctx context.Context, userID uuid.UUID) (*domain.TierCounts, error) {
	return &domain.TierCounts{}, nil
}

func (m *mockVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return m
}

// captureEmitter records emitted events for assertions.
type captureEmitter struct {
	emitted []*events.TaskRequestEvent
}

var _ events.EventEmitter = (*captureEmitter)(nil)

func (e *captureEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	e.emitted = append(e.emitted, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewVocabularyServiceValidation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewVocabularyService(nil, nil, discardLogger())
	})
	assert.NotPanics(t, func() {
		NewVocabularyService(&mockVocabularyStore{}, nil, nil)
	})
}

func TestCreateNormalizesTerm(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var saved *domain.VocabularyItem
	vocabStore := &mockVocabularyStore{
		CreateFunc: func(ctx context.Context, item *domain.VocabularyItem) error {
			saved = item
			return nil
		},
	}

	svc := NewVocabularyService(vocabStore, nil, discardLogger())
	item, err := svc.Create(context.Background(), userID, CreateItemInput{
		Term:        "  Bonjour ",
		Translation: "hello",
		Context:     "greeting someone",
		Notes:       "formal",
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, "bonjour", item.Term)
	assert.Equal(t, "hello", item.Translation)
	assert.Equal(t, domain.TierLearning, item.Tier)
	assert.Equal(t, 0, item.ReviewCount)
	assert.Nil(t, item.LastReviewedAt)
	assert.Equal(t, userID, item.UserID)
	require.NotNil(t, saved)
	assert.Equal(t, item.ID, saved.ID)
}

func TestCreateEmitsAchievementCheck(t *testing.T) {
	t.Parallel()

	emitter := &captureEmitter{}
	svc := NewVocabularyService(&mockVocabularyStore{}, emitter, discardLogger())

	_, err := svc.Create(context.Background(), uuid.New(), CreateItemInput{
		Term:        "gato",
		Translation: "cat",
	})
	require.NoError(t, err)

	require.Len(t, emitter.emitted, 1)
	assert.Equal(t, events.TaskTypeAchievementCheck, emitter.emitted[0].Type)
}

func TestCreateRejectsEmptyTerm(t *testing.T) {
	t.Parallel()

	svc := NewVocabularyService(&mockVocabularyStore{}, nil, discardLogger())
	item, err := svc.Create(context.Background(), uuid.New(), CreateItemInput{
		Term:        "   ",
		Translation: "nothing",
	})
	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrEmptyTerm)
}

func TestCreateDuplicateTerm(t *testing.T) {
	t.Parallel()

	emitter := &captureEmitter{}
	vocabStore := &mockVocabularyStore{
		CreateFunc: func(ctx context.Context, item *domain.VocabularyItem) error {
			return store.ErrTermExists
		},
	}

	svc := NewVocabularyService(vocabStore, emitter, discardLogger())
	item, err := svc.Create(context.Background(), uuid.New(), CreateItemInput{
		Term:        "gato",
		Translation: "cat",
	})
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrDuplicateTerm)
	assert.Empty(t, emitter.emitted, "no achievement check when nothing was created")
}

func TestGet(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing, err := domain.NewVocabularyItem(userID, "perro", "dog", "", "")
	require.NoError(t, err)

	vocabStore := &mockVocabularyStore{
		GetForUserFunc: func(ctx context.Context, id, uid uuid.UUID) (*domain.VocabularyItem, error) {
			if id == existing.ID && uid == userID {
				return existing, nil
			}
			return nil, store.ErrItemNotFound
		},
	}

	svc := NewVocabularyService(vocabStore, nil, discardLogger())

	t.Run("found", func(t *testing.T) {
		item, err := svc.Get(context.Background(), userID, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, item.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Get(context.Background(), userID, uuid.New())
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("wrong owner", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New(), existing.ID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestListPassesFilter(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotFilter store.ItemFilter
	vocabStore := &mockVocabularyStore{
		ListByUserFunc: func(ctx context.Context, uid uuid.UUID, filter store.ItemFilter) ([]*domain.VocabularyItem, error) {
			gotFilter = filter
			return []*domain.VocabularyItem{}, nil
		},
	}

	svc := NewVocabularyService(vocabStore, nil, discardLogger())
	tier := domain.TierFamiliar
	items, err := svc.List(context.Background(), userID, ListFilter{Tier: &tier, Limit: 25, Offset: 50})
	require.NoError(t, err)
	assert.NotNil(t, items)

	require.NotNil(t, gotFilter.Tier)
	assert.Equal(t, domain.TierFamiliar, *gotFilter.Tier)
	assert.Equal(t, 25, gotFilter.Limit)
	assert.Equal(t, 50, gotFilter.Offset)
}

func TestListInvalidTier(t *testing.T) {
	t.Parallel()

	svc := NewVocabularyService(&mockVocabularyStore{}, nil, discardLogger())
	bogus := domain.Tier("fluent")
	items, err := svc.List(context.Background(), uuid.New(), ListFilter{Tier: &bogus})
	assert.Nil(t, items)
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestUpdateMetadata(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing, err := domain.NewVocabularyItem(userID, "perro", "dog", "", "")
	require.NoError(t, err)
	existing.ReviewCount = 4
	existing.CorrectCount = 3
	existing.IncorrectCount = 1
	existing.Tier = domain.TierFamiliar

	var saved *domain.VocabularyItem
	vocabStore := &mockVocabularyStore{
		GetForUserFunc: func(ctx context.Context, id, uid uuid.UUID) (*domain.VocabularyItem, error) {
			return existing.Clone(), nil
		},
		UpdateMetadataFunc: func(ctx context.Context, item *domain.VocabularyItem) error {
			saved = item
			return nil
		},
	}

	svc := NewVocabularyService(vocabStore, nil, discardLogger())
	item, err := svc.UpdateMetadata(context.Background(), userID, existing.ID, UpdateItemInput{
		Term:        "Perra",
		Translation: "female dog",
		Notes:       "feminine form",
	})
	require.NoError(t, err)

	assert.Equal(t, "perra", item.Term)
	assert.Equal(t, "female dog", item.Translation)
	assert.Equal(t, "feminine form", item.Notes)

	// Review state survives a metadata edit untouched.
	assert.Equal(t, 4, item.ReviewCount)
	assert.Equal(t, 3, item.CorrectCount)
	assert.Equal(t, domain.TierFamiliar, item.Tier)
	require.NotNil(t, saved)
	assert.Equal(t, "perra", saved.Term)
}

func TestUpdateMetadataRenameCollision(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing, err := domain.NewVocabularyItem(userID, "perro", "dog", "", "")
	require.NoError(t, err)

	vocabStore := &mockVocabularyStore{
		GetForUserFunc: func(ctx context.Context, id, uid uuid.UUID) (*domain.VocabularyItem, error) {
			return existing.Clone(), nil
		},
		UpdateMetadataFunc: func(ctx context.Context, item *domain.VocabularyItem) error {
			return store.ErrTermExists
		},
	}

	svc := NewVocabularyService(vocabStore, nil, discardLogger())
	_, err = svc.UpdateMetadata(context.Background(), userID, existing.ID, UpdateItemInput{
		Term:        "gato",
		Translation: "cat",
	})
	assert.ErrorIs(t, err, ErrDuplicateTerm)
}

func TestUpdateMetadataNotFound(t *testing.T) {
	t.Parallel()

	svc := NewVocabularyService(&mockVocabularyStore{}, nil, discardLogger())
	_, err := svc.UpdateMetadata(context.Background(), uuid.New(), uuid.New(), UpdateItemInput{
		Term: "gato",
	})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	itemID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		deleted := false
		vocabStore := &mockVocabularyStore{
			DeleteFunc: func(ctx context.Context, id, uid uuid.UUID) error {
				assert.Equal(t, itemID, id)
				assert.Equal(t, userID, uid)
				deleted = true
				return nil
			},
		}

		svc := NewVocabularyService(vocabStore, nil, discardLogger())
		require.NoError(t, svc.Delete(context.Background(), userID, itemID))
		assert.True(t, deleted)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		vocabStore := &mockVocabularyStore{
			DeleteFunc: func(ctx context.Context, id, uid uuid.UUID) error {
				return store.ErrItemNotFound
			},
		}

		svc := NewVocabularyService(vocabStore, nil, discardLogger())
		err := svc.Delete(context.Background(), userID, itemID)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		vocabStore := &mockVocabularyStore{
			DeleteFunc: func(ctx context.Context, id, uid uuid.UUID) error {
				return errors.New("connection refused")
			},
		}

		svc := NewVocabularyService(vocabStore, nil, discardLogger())
		err := svc.Delete(context.Background(), userID, itemID)
		require.Error(t, err)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "delete_item", svcErr.Operation)
	})
}
