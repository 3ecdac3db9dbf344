package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateItemRequest defines the payload for adding a vocabulary item.
type CreateItemRequest struct {
	Term        string `json:"term"        validate:"required,max=200"`
	Translation string `json:"translation" validate:"required,max=500"`
	Context     string `json:"context"     validate:"max=1000"`
	Notes       string `json:"notes"       validate:"max=2000"`
}

// UpdateItemRequest defines the payload for editing an item's
// descriptive fields. Counters and the tier are not editable.
type UpdateItemRequest struct {
	Term        string `json:"term"        validate:"required,max=200"`
	Translation string `json:"translation" validate:"required,max=500"`
	Context     string `json:"context"     validate:"max=1000"`
	Notes       string `json:"notes"       validate:"max=2000"`
}

// ItemResponse is the API representation of one vocabulary item.
type ItemResponse struct {
	ID             uuid.UUID  `json:"id"`
	Term           string     `json:"term"`
	Translation    string     `json:"translation"`
	Context        string     `json:"context,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	Tier           string     `json:"tier"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewItemResponse converts a domain item into its API representation.
func NewItemResponse(item *domain.VocabularyItem) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		Term:           item.Term,
		Translation:    item.Translation,
		Context:        item.Context,
		Notes:          item.Notes,
		Tier:           string(item.Tier),
		ReviewCount:    item.ReviewCount,
		CorrectCount:   item.CorrectCount,
		IncorrectCount: item.IncorrectCount,
		LastReviewedAt: item.LastReviewedAt,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// NewItemListResponse converts a slice of domain items.
func NewItemListResponse(items []*domain.VocabularyItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}

// AnswerRequest defines the payload for recording a review outcome.
type AnswerRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// AnswerResponse reports the item state after a recorded review.
type AnswerResponse struct {
	Item         ItemResponse `json:"item"`
	TierChanged  bool         `json:"tier_changed"`
	PreviousTier string       `json:"previous_tier"`
}

// StatsResponse summarizes a learner's pool by tier.
type StatsResponse struct {
	Total    int `json:"total"`
	Learning int `json:"learning"`
	Familiar int `json:"familiar"`
	Mastered int `json:"mastered"`
}

// ExampleResponse carries a generated example sentence.
type ExampleResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	Term     string    `json:"term"`
	Sentence string    `json:"sentence"`
}

// AchievementResponse is the API representation of one earned achievement.
type AchievementResponse struct {
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	AwardedAt   time.Time `json:"awarded_at"`
}
