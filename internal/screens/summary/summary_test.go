package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwhizkids/wordwhiz/internal/session"
)

type leftMsg struct{}

func anaSession() session.Summary {
	return session.Summary{
		Student:    "Ana",
		Duration:   20 * time.Minute,
		Elapsed:    20 * time.Minute,
		Score:      110,
		BestStreak: 4,
		Seen:       14,
		Answered:   14,
		Correct:    11,
		Accuracy:   float64(11) / float64(14),
	}
}

func newSummary() *SummaryScreen {
	return New(anaSession(), func() tea.Cmd {
		return func() tea.Msg { return leftMsg{} }
	})
}

func TestReport(t *testing.T) {
	s := newSummary()
	assert.Equal(t, "Session Summary", s.Title())
	assert.Len(t, s.KeyHints(), 2)

	view := s.View(100, 30)
	for _, want := range []string{"Time's up, Ana!", "110 Cuudoos", "Best streak: 4", "Challenges: 14", "11/14", "20:00", "Accuracy", leaveLabel} {
		assert.Contains(t, view, want)
	}
}

func TestNoAnswersHidesAccuracy(t *testing.T) {
	s := New(session.Summary{Student: "Carter"}, nil)
	assert.NotContains(t, s.View(100, 30), "Accuracy")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "no callback, nothing to run")
}

func TestLeaveKeys(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := newSummary().Update(k)
		require.NotNil(t, cmd, k.String())
		assert.IsType(t, leftMsg{}, cmd(), k.String())
	}

	_, cmd := newSummary().Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd)
}

func TestCheer(t *testing.T) {
	tests := []struct {
		answered int
		accuracy float64
		want     string
	}{
		{0, 0, "Come back soon for more word fun!"},
		{10, 0.95, "Superstar speller!"},
		{10, 0.7, "Great work today!"},
		{10, 0.3, "Every try makes you stronger. Keep going!"},
	}
	for _, tt := range tests {
		got := Cheer(session.Summary{Answered: tt.answered, Accuracy: tt.accuracy})
		assert.Equal(t, tt.want, got)
	}
}
