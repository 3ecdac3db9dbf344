package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parla-app/parla-api/internal/store"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name:          "nil_error",
			err:           nil,
			expectedError: nil,
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "vocabulary_items_user_id_term_key",
			},
			expectedMsg: "entity already exists",
		},
		{
			name: "foreign_key_violation",
			err: &pgconn.PgError{
				Code: foreignKeyViolationCode,
			},
			expectedMsg: "foreign key violation",
		},
		{
			name: "check_constraint_violation",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "vocabulary_items_counts_check",
			},
			expectedMsg: "check constraint violation",
		},
		{
			name:          "generic_error",
			err:           errors.New("some other error"),
			expectedError: errors.New("some other error"),
		},
		{
			name: "unknown_pg_code",
			err: &pgconn.PgError{
				Code:    "99999",
				Message: "unknown error",
			},
			expectedError: &pgconn.PgError{
				Code:    "99999",
				Message: "unknown error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)

			if tt.expectedError == nil && tt.expectedMsg == "" {
				assert.Nil(t, result)
			} else if tt.expectedMsg != "" {
				require.NotNil(t, result)
				assert.Contains(t, result.Error(), tt.expectedMsg)
				if !errors.Is(result, store.ErrDuplicate) && !errors.Is(result, store.ErrInvalidEntity) {
					t.Errorf("Expected error to wrap store.ErrDuplicate or store.ErrInvalidEntity")
				}
			} else if errors.Is(tt.expectedError, store.ErrNotFound) {
				assert.ErrorIs(t, result, store.ErrNotFound)
			} else {
				assert.Equal(t, tt.expectedError.Error(), result.Error())
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(
		t,
		IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: uniqueViolationCode})),
	)
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(store.ErrItemNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get failed: %w", store.ErrUserNotFound)))
	assert.False(t, IsNotFoundError(store.ErrConflict))
	assert.False(t, IsNotFoundError(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Run("nil result", func(t *testing.T) {
		err := CheckRowsAffected(nil, "user")
		assert.Error(t, err)
	})

	t.Run("rows affected error", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{err: errors.New("driver failure")}, "user")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("zero rows with entity name", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{rowsAffected: 0}, "vocabulary item")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "vocabulary item not found")
	})

	t.Run("zero rows without entity name", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{rowsAffected: 0}, "")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("one row", func(t *testing.T) {
		assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, "user"))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode}

	t.Run("maps to specific error", func(t *testing.T) {
		err := MapUniqueViolation(pgErr, store.ErrTermExists)
		assert.ErrorIs(t, err, store.ErrTermExists)
	})

	t.Run("falls back to generic duplicate", func(t *testing.T) {
		err := MapUniqueViolation(pgErr, nil)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("passes through non-unique errors", func(t *testing.T) {
		original := errors.New("timeout")
		assert.Equal(t, original, MapUniqueViolation(original, store.ErrTermExists))
	})
}
