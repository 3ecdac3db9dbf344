package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/parla-app/parla-api/internal/generation"
	"github.com/parla-app/parla-api/internal/service/auth"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/service/vocabulary"
	"github.com/parla-app/parla-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid_token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired_token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"expired_refresh_token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"user_not_found", store.ErrUserNotFound, http.StatusNotFound},
		{"item_not_found_store", store.ErrItemNotFound, http.StatusNotFound},
		{"item_not_found_practice", practice.ErrItemNotFound, http.StatusNotFound},
		{"item_not_found_vocabulary", vocabulary.ErrItemNotFound, http.StatusNotFound},
		{"email_exists", store.ErrEmailExists, http.StatusConflict},
		{"duplicate_term", vocabulary.ErrDuplicateTerm, http.StatusConflict},
		{"invalid_limit", practice.ErrInvalidLimit, http.StatusBadRequest},
		{"invalid_tier", practice.ErrInvalidTier, http.StatusBadRequest},
		{"conflict_retries_exhausted", practice.ErrConflictRetriesExhausted, http.StatusServiceUnavailable},
		{"generation_transient", generation.ErrTransientFailure, http.StatusBadGateway},
		{"generation_blocked", generation.ErrContentBlocked, http.StatusBadGateway},
		{"unknown_error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped_sentinel", fmt.Errorf("recording outcome: %w", practice.ErrItemNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil_error", nil, "An unexpected error occurred"},
		{"item_not_found", vocabulary.ErrItemNotFound, "Vocabulary item not found"},
		{"duplicate_term", vocabulary.ErrDuplicateTerm, "Term already exists"},
		{"conflict_exhausted", practice.ErrConflictRetriesExhausted, "Item is being updated concurrently, try again"},
		{"generation_blocked", generation.ErrContentBlocked, "Example generation was blocked"},
		{"internal_detail_hidden", errors.New("pq: connection refused host=db.internal"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expected, msg)
			assert.NotContains(t, msg, "db.internal")
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	validate := validator.New()

	t.Run("missing_required_field", func(t *testing.T) {
		err := validate.Struct(LoginRequest{Password: "secret"})
		assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))
	})

	t.Run("invalid_email_format", func(t *testing.T) {
		err := validate.Struct(LoginRequest{Email: "not-an-email", Password: "secret"})
		assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))
	})

	t.Run("value_too_long", func(t *testing.T) {
		long := make([]byte, 201)
		for i := range long {
			long[i] = 'a'
		}
		err := validate.Struct(CreateItemRequest{Term: string(long), Translation: "x"})
		assert.Equal(t, "Invalid Term: too long", SanitizeValidationError(err))
	})

	t.Run("non_validation_error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
