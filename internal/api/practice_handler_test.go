package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/service/practice"
)

func TestPracticeHandler_Batch(t *testing.T) {
	t.Run("passes_tier_and_limit_through", func(t *testing.T) {
		var gotTier *domain.Tier
		var gotLimit int
		mockService := &practice.MockPracticeService{
			SelectBatchFunc: func(ctx context.Context, userID uuid.UUID, filterTier *domain.Tier, limit int) ([]*domain.VocabularyItem, error) {
				assert.Equal(t, testUserID, userID)
				gotTier = filterTier
				gotLimit = limit
				return []*domain.VocabularyItem{newTestItem()}, nil
			},
		}
		handler := NewPracticeHandler(mockService)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/practice/batch?tier=learning&limit=5", nil))
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotTier)
		assert.Equal(t, domain.TierLearning, *gotTier)
		assert.Equal(t, 5, gotLimit)

		var resp []ItemResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, testItemID, resp[0].ID)
	})

	t.Run("defaults_without_query_params", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			SelectBatchFunc: func(ctx context.Context, userID uuid.UUID, filterTier *domain.Tier, limit int) ([]*domain.VocabularyItem, error) {
				assert.Nil(t, filterTier)
				assert.Equal(t, 0, limit)
				return []*domain.VocabularyItem{}, nil
			},
		}
		handler := NewPracticeHandler(mockService)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/practice/batch", nil))
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("unrecognized_tier", func(t *testing.T) {
		handler := NewPracticeHandler(&practice.MockPracticeService{})

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/practice/batch?tier=expert", nil))
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Unrecognized tier")
	})

	t.Run("malformed_limit", func(t *testing.T) {
		handler := NewPracticeHandler(&practice.MockPracticeService{})

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/practice/batch?limit=ten", nil))
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Invalid limit")
	})

	t.Run("negative_limit_rejected_by_service", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			SelectBatchFunc: func(ctx context.Context, userID uuid.UUID, filterTier *domain.Tier, limit int) ([]*domain.VocabularyItem, error) {
				return nil, practice.ErrInvalidLimit
			},
		}
		handler := NewPracticeHandler(mockService)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/practice/batch?limit=-1", nil))
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Limit must not be negative")
	})

	t.Run("missing_user_id", func(t *testing.T) {
		handler := NewPracticeHandler(&practice.MockPracticeService{})

		req := httptest.NewRequest(http.MethodGet, "/api/practice/batch", nil)
		w := httptest.NewRecorder()
		handler.Batch(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Authentication required")
	})
}

func TestPracticeHandler_Answer(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	t.Run("correct_answer_with_tier_change", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			RecordOutcomeFunc: func(ctx context.Context, userID, itemID uuid.UUID, outcome practice.ReviewOutcome) (*practice.RecordResult, error) {
				assert.Equal(t, testUserID, userID)
				assert.Equal(t, testItemID, itemID)
				assert.True(t, outcome.Correct)
				item := newTestItem()
				item.Tier = domain.TierFamiliar
				item.ReviewCount = 3
				item.CorrectCount = 3
				item.IncorrectCount = 0
				return &practice.RecordResult{
					Item:         item,
					TierChanged:  true,
					PreviousTier: domain.TierLearning,
				}, nil
			},
		}
		handler := NewPracticeHandler(mockService)

		body, err := json.Marshal(AnswerRequest{IsCorrect: boolPtr(true)})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp AnswerResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "familiar", resp.Item.Tier)
		assert.True(t, resp.TierChanged)
		assert.Equal(t, "learning", resp.PreviousTier)
	})

	t.Run("false_is_a_valid_outcome", func(t *testing.T) {
		var gotCorrect bool
		mockService := &practice.MockPracticeService{
			RecordOutcomeFunc: func(ctx context.Context, userID, itemID uuid.UUID, outcome practice.ReviewOutcome) (*practice.RecordResult, error) {
				gotCorrect = outcome.Correct
				return &practice.RecordResult{Item: newTestItem(), PreviousTier: domain.TierLearning}, nil
			},
		}
		handler := NewPracticeHandler(mockService)

		body, err := json.Marshal(AnswerRequest{IsCorrect: boolPtr(false)})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, gotCorrect)
	})

	t.Run("missing_is_correct_field", func(t *testing.T) {
		handler := NewPracticeHandler(&practice.MockPracticeService{})

		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "required field")
	})

	t.Run("invalid_request_format", func(t *testing.T) {
		handler := NewPracticeHandler(&practice.MockPracticeService{})

		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader([]byte(`{"is_correct":`)))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Invalid request format")
	})

	t.Run("item_not_found", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			RecordOutcomeFunc: func(ctx context.Context, userID, itemID uuid.UUID, outcome practice.ReviewOutcome) (*practice.RecordResult, error) {
				return nil, practice.ErrItemNotFound
			},
		}
		handler := NewPracticeHandler(mockService)

		body, err := json.Marshal(AnswerRequest{IsCorrect: boolPtr(true)})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "Vocabulary item not found")
	})

	t.Run("persistent_write_contention", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			RecordOutcomeFunc: func(ctx context.Context, userID, itemID uuid.UUID, outcome practice.ReviewOutcome) (*practice.RecordResult, error) {
				return nil, practice.ErrConflictRetriesExhausted
			},
		}
		handler := NewPracticeHandler(mockService)

		body, err := json.Marshal(AnswerRequest{IsCorrect: boolPtr(true)})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/practice/"+testItemID.String()+"/answer", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withPathID(withUser(req), testItemID.String())

		w := httptest.NewRecorder()
		handler.Answer(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, decodeError(t, w.Body).Error, "try again")
	})
}

func TestPracticeHandler_NextDue(t *testing.T) {
	t.Run("reports_due_info", func(t *testing.T) {
		dueAt := time.Date(2025, time.June, 15, 16, 0, 0, 0, time.UTC)
		mockService := &practice.MockPracticeService{
			NextDueAtFunc: func(ctx context.Context, userID, itemID uuid.UUID) (*practice.DueInfo, error) {
				assert.Equal(t, testItemID, itemID)
				return &practice.DueInfo{
					ItemID: itemID,
					Due:    false,
					DueAt:  dueAt.Format(time.RFC3339),
				}, nil
			},
		}
		handler := NewPracticeHandler(mockService)

		req := withPathID(withUser(httptest.NewRequest(http.MethodGet, "/api/practice/"+testItemID.String()+"/due", nil)), testItemID.String())
		w := httptest.NewRecorder()
		handler.NextDue(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp practice.DueInfo
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, testItemID, resp.ItemID)
		assert.False(t, resp.Due)
		assert.Equal(t, "2025-06-15T16:00:00Z", resp.DueAt)
	})

	t.Run("item_not_found", func(t *testing.T) {
		mockService := &practice.MockPracticeService{
			NextDueAtFunc: func(ctx context.Context, userID, itemID uuid.UUID) (*practice.DueInfo, error) {
				return nil, practice.ErrItemNotFound
			},
		}
		handler := NewPracticeHandler(mockService)

		req := withPathID(withUser(httptest.NewRequest(http.MethodGet, "/api/practice/"+testItemID.String()+"/due", nil)), testItemID.String())
		w := httptest.NewRecorder()
		handler.NextDue(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
