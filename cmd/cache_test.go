package cmd

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/session"
)

func TestWarmPhrases(t *testing.T) {
	phrases := warmPhrases(challenge.DefaultBank())

	assert.Contains(t, phrases, session.ConnectionFailed)
	assert.Contains(t, phrases, "Great job Ana! That is correct.")
	assert.Contains(t, phrases, play.WelcomeLine("Guest 1", 30))
	assert.True(t, slices.IsSorted(phrases))
	assert.Len(t, slices.Compact(slices.Clone(phrases)), len(phrases), "phrases should be unique")
	for _, p := range phrases {
		assert.NotEmpty(t, p)
	}
}

func TestValidateMinutes(t *testing.T) {
	for _, m := range []int{0, 20, 30} {
		assert.NoError(t, validateMinutes(m))
	}
	for _, m := range []int{-1, 10, 25, 60} {
		assert.Error(t, validateMinutes(m))
	}
}
