package api

import (
	"net/http"

	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/store"
)

// AchievementHandler handles achievement listing requests.
type AchievementHandler struct {
	achievementStore store.AchievementStore
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementStore store.AchievementStore) *AchievementHandler {
	return &AchievementHandler{
		achievementStore: achievementStore,
	}
}

// List handles GET /achievements: the user's earned achievements, most
// recent first.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	achievements, err := h.achievementStore.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, AchievementResponse{
			Code:        a.Code,
			Title:       a.Title,
			Description: a.Description,
			AwardedAt:   a.AwardedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, out)
}
