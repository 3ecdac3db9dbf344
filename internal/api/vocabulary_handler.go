package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/generation"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/service/vocabulary"
)

// VocabularyHandler handles vocabulary pool API requests: CRUD, stats,
// recommendations, and example sentence generation.
type VocabularyHandler struct {
	vocabularyService vocabulary.VocabularyService
	practiceService   practice.PracticeService
	exampleGenerator  generation.ExampleGenerator
	validator         *validator.Validate
}

// NewVocabularyHandler creates a new VocabularyHandler with the given
// dependencies. The example generator may be nil, in which case the
// example endpoint reports the feature as unavailable.
func NewVocabularyHandler(
	vocabularyService vocabulary.VocabularyService,
	practiceService practice.PracticeService,
	exampleGenerator generation.ExampleGenerator,
) *VocabularyHandler {
	return &VocabularyHandler{
		vocabularyService: vocabularyService,
		practiceService:   practiceService,
		exampleGenerator:  exampleGenerator,
		validator:         validator.New(),
	}
}

// List handles GET /vocabulary. Supported query parameters: tier
// (learning|familiar|mastered), limit, offset.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := vocabulary.ListFilter{}
	if raw := r.URL.Query().Get("tier"); raw != "" {
		tier, err := domain.ParseTier(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Unrecognized tier")
			return
		}
		filter.Tier = &tier
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset")
			return
		}
		filter.Offset = offset
	}

	items, err := h.vocabularyService.List(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewItemListResponse(items))
}

// Get handles GET /vocabulary/{id}.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.vocabularyService.Get(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewItemResponse(item))
}

// Create handles POST /vocabulary.
func (h *VocabularyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.vocabularyService.Create(r.Context(), userID, vocabulary.CreateItemInput{
		Term:        req.Term,
		Translation: req.Translation,
		Context:     req.Context,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewItemResponse(item))
}

// Update handles PUT /vocabulary/{id}.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := h.vocabularyService.UpdateMetadata(r.Context(), userID, itemID, vocabulary.UpdateItemInput{
		Term:        req.Term,
		Translation: req.Translation,
		Context:     req.Context,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewItemResponse(item))
}

// Delete handles DELETE /vocabulary/{id}.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.vocabularyService.Delete(r.Context(), userID, itemID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /vocabulary/stats.
func (h *VocabularyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	counts, err := h.practiceService.Stats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatsResponse{
		Total:    counts.Total,
		Learning: counts.Learning,
		Familiar: counts.Familiar,
		Mastered: counts.Mastered,
	})
}

// Recommended handles GET /vocabulary/recommended: due, not-yet-mastered
// items the learner should practice next.
func (h *VocabularyHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.practiceService.Recommended(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewItemListResponse(items))
}

// GenerateExample handles POST /vocabulary/{id}/example: produces one
// example sentence for the item's term. Generation failures never touch
// the item's stored state.
func (h *VocabularyHandler) GenerateExample(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	itemID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if h.exampleGenerator == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Example generation is not configured")
		return
	}

	item, err := h.vocabularyService.Get(r.Context(), userID, itemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	sentence, err := h.exampleGenerator.GenerateExample(r.Context(), item.Term, item.Translation)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExampleResponse{
		ItemID:   item.ID,
		Term:     item.Term,
		Sentence: sentence,
	})
}
