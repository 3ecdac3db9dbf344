package postgres

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostgresVocabularyStore(t *testing.T) {
	t.Run("panics on nil db", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresVocabularyStore(nil, nil)
		})
	})

	t.Run("accepts nil logger", func(t *testing.T) {
		s := NewPostgresVocabularyStore(&sql.DB{}, nil)
		assert.NotNil(t, s)
	})
}

func TestVocabularyStoreWithTx(t *testing.T) {
	s := NewPostgresVocabularyStore(&sql.DB{}, nil)

	var tx *sql.Tx
	txStore := s.WithTx(tx)

	assert.NotNil(t, txStore)
	assert.NotSame(t, s, txStore, "WithTx should return a new store instance")
}

func TestNewPostgresUserStore(t *testing.T) {
	t.Run("panics on nil db", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresUserStore(nil, nil, 0)
		})
	})

	t.Run("zero cost falls back to default", func(t *testing.T) {
		s := NewPostgresUserStore(&sql.DB{}, nil, 0)
		assert.NotNil(t, s)
		assert.Greater(t, s.bcryptCost, 0)
	})
}

func TestNewPostgresAchievementStore(t *testing.T) {
	t.Run("panics on nil db", func(t *testing.T) {
		assert.Panics(t, func() {
			NewPostgresAchievementStore(nil, nil)
		})
	})

	t.Run("WithTx returns a new instance", func(t *testing.T) {
		s := NewPostgresAchievementStore(&sql.DB{}, nil)
		var tx *sql.Tx
		assert.NotSame(t, s, s.WithTx(tx))
	})
}
