package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faculty-hub/models"
)

func TestValidateCommentBody(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		trimmed, err := ValidateCommentBody("  Great work!  ")
		require.NoError(t, err)
		assert.Equal(t, "Great work!", trimmed)
	})

	t.Run("whitespace only is empty", func(t *testing.T) {
		_, err := ValidateCommentBody("   \t\n  ")
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("empty string is empty", func(t *testing.T) {
		_, err := ValidateCommentBody("")
		assert.ErrorIs(t, err, ErrEmptyBody)
	})

	t.Run("exactly at the limit passes", func(t *testing.T) {
		body := strings.Repeat("a", MaxCommentLength)
		trimmed, err := ValidateCommentBody(body)
		require.NoError(t, err)
		assert.Len(t, trimmed, MaxCommentLength)
	})

	t.Run("one over the limit fails", func(t *testing.T) {
		_, err := ValidateCommentBody(strings.Repeat("a", MaxCommentLength+1))
		assert.ErrorIs(t, err, ErrBodyTooLong)
	})

	t.Run("limit counts runes not bytes", func(t *testing.T) {
		_, err := ValidateCommentBody(strings.Repeat("ü", MaxCommentLength))
		assert.NoError(t, err)
	})
}

func TestIsValidReaction(t *testing.T) {
	assert.True(t, models.IsValidReaction(models.ReactionLike))
	assert.True(t, models.IsValidReaction(models.ReactionCelebrate))
	assert.True(t, models.IsValidReaction(models.ReactionInsightful))
	assert.False(t, models.IsValidReaction("dislike"))
	assert.False(t, models.IsValidReaction(""))
}
