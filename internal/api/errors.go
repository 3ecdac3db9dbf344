package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/generation"
	"github.com/parla-app/parla-api/internal/service/auth"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/service/vocabulary"
	"github.com/parla-app/parla-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors. Ownership mismatches surface here too, so a
	// caller probing foreign IDs learns nothing.
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, practice.ErrItemNotFound),
		errors.Is(err, vocabulary.ErrItemNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrTermExists),
		errors.Is(err, vocabulary.ErrDuplicateTerm):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, practice.ErrInvalidLimit),
		errors.Is(err, practice.ErrInvalidTier),
		errors.Is(err, vocabulary.ErrInvalidTier),
		errors.Is(err, domain.ErrEmptyTerm),
		errors.Is(err, domain.ErrInvalidTier):
		return http.StatusBadRequest

	// Persistent write contention: the client should retry later
	case errors.Is(err, practice.ErrConflictRetriesExhausted):
		return http.StatusServiceUnavailable

	// Upstream language model failures
	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, practice.ErrItemNotFound),
		errors.Is(err, vocabulary.ErrItemNotFound):
		return "Vocabulary item not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrTermExists),
		errors.Is(err, vocabulary.ErrDuplicateTerm):
		return "Term already exists"

	case errors.Is(err, practice.ErrConflictRetriesExhausted):
		return "Item is being updated concurrently, try again"

	// Bad request errors
	case errors.Is(err, practice.ErrInvalidLimit):
		return "Limit must not be negative"

	case errors.Is(err, practice.ErrInvalidTier),
		errors.Is(err, vocabulary.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidTier):
		return "Unrecognized tier"

	case errors.Is(err, domain.ErrEmptyTerm):
		return "Term cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Language model failures
	case errors.Is(err, generation.ErrContentBlocked):
		return "Example generation was blocked"

	case errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Example generation is temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
