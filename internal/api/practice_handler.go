package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/service/practice"
)

// PracticeHandler handles practice session API requests: batch assembly
// and review outcome recording.
type PracticeHandler struct {
	practiceService practice.PracticeService
	validator       *validator.Validate
}

// NewPracticeHandler creates a new PracticeHandler with the given dependencies.
func NewPracticeHandler(practiceService practice.PracticeService) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		validator:       validator.New(),
	}
}

// Batch handles GET /practice/batch?tier=&limit=. It returns the user's
// due items, least recently reviewed first, capped at the limit.
func (h *PracticeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var filterTier *domain.Tier
	if raw := r.URL.Query().Get("tier"); raw != "" {
		tier, err := domain.ParseTier(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Unrecognized tier")
			return
		}
		filterTier = &tier
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	items, err := h.practiceService.SelectBatch(r.Context(), userID, filterTier, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewItemListResponse(items))
}

// Answer handles POST /practice/{id}/answer. It records one review
// outcome and returns the updated item together with any tier change.
func (h *PracticeHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.practiceService.RecordOutcome(r.Context(), userID, itemID, practice.ReviewOutcome{
		Correct: *req.IsCorrect,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Item:         NewItemResponse(result.Item),
		TierChanged:  result.TierChanged,
		PreviousTier: string(result.PreviousTier),
	})
}

// NextDue handles GET /practice/{id}/due. It reports whether the item is
// currently eligible for practice and when it next becomes due.
func (h *PracticeHandler) NextDue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	info, err := h.practiceService.NextDueAt(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, info)
}
