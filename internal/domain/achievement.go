package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Validation errors for Achievement
var (
	ErrEmptyAchievementCode   = errors.New("achievement code cannot be empty")
	ErrEmptyAchievementUserID = errors.New("achievement user ID cannot be empty")
)

// Achievement records a milestone a learner has reached, awarded by the
// background evaluator after review outcomes move items between tiers.
// Awards are idempotent: a given (UserID, Code) pair is only ever stored once.
type Achievement struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AwardedAt   time.Time `json:"awarded_at"`
}

// NewAchievement creates an achievement award for the given user.
func NewAchievement(userID uuid.UUID, code, title, description string) (*Achievement, error) {
	a := &Achievement{
		ID:          uuid.New(),
		UserID:      userID,
		Code:        code,
		Title:       title,
		Description: description,
		AwardedAt:   time.Now().UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the Achievement has valid data.
func (a *Achievement) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyAchievementUserID
	}

	if a.Code == "" {
		return ErrEmptyAchievementCode
	}

	return nil
}
