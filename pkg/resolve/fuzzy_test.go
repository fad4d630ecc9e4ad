package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosest(t *testing.T) {
	keys := []string{
		"Enid city, Oklahoma",
		"Lake Wobegon village, Minnesota",
		"Athens city, Georgia",
	}

	t.Run("one character off", func(t *testing.T) {
		key, score, ok := closest("Enid city, Oklahma", keys, 0.95)
		assert.True(t, ok)
		assert.Equal(t, "Enid city, Oklahoma", key)
		assert.GreaterOrEqual(t, score, 0.95)
	})

	t.Run("three characters off", func(t *testing.T) {
		_, _, ok := closest("Emit city, Oklahona", keys, 0.95)
		assert.False(t, ok)
	})

	t.Run("two keys above threshold", func(t *testing.T) {
		tied := append([]string{"Lake Wobegon villages, Minnesota"}, keys...)
		_, _, ok := closest("Lake Wobegon villag, Minnesota", tied, 0.95)
		assert.False(t, ok)
	})

	t.Run("lower threshold", func(t *testing.T) {
		key, _, ok := closest("Athens, Georgia", keys, 0.8)
		assert.True(t, ok)
		assert.Equal(t, "Athens city, Georgia", key)
	})
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("abc", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 36.0/37.0, Similarity("Enid city, Oklahma", "Enid city, Oklahoma"), 1e-9)
}
