// Package summary is the end-of-session report shown when the clock runs out.
package summary

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const leaveLabel = "Back to Profiles"

// SummaryScreen shows how the session went. Enter or Esc runs done.
type SummaryScreen struct {
	sum  session.Summary
	done func() tea.Cmd
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(sum session.Summary, done func() tea.Cmd) *SummaryScreen {
	return &SummaryScreen{sum: sum, done: done}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Session Summary" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || s.done == nil {
		return s, nil
	}
	switch key.String() {
	case "enter", "esc":
		return s, s.done()
	}
	return s, nil
}

// Cheer is the line under the score, picked by accuracy.
func Cheer(sum session.Summary) string {
	switch {
	case sum.Answered == 0:
		return "Come back soon for more word fun!"
	case sum.Accuracy >= 0.9:
		return "Superstar speller!"
	case sum.Accuracy >= 0.6:
		return "Great work today!"
	}
	return "Every try makes you stronger. Keep going!"
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.sum
	title := "Time's up!"
	if sum.Student != "" {
		title = fmt.Sprintf("Time's up, %s!", sum.Student)
	}

	rows := []string{
		theme.Strong(theme.Primary).Render(title),
		theme.Ink(theme.TextDim).Render("You played for " + layout.Clock(sum.Elapsed)),
		theme.Strong(theme.Gold).Render(fmt.Sprintf("🏆 %d Cuudoos", sum.Score)),
		theme.Ink(theme.Secondary).Render(Cheer(sum)),
		theme.Ink(theme.Text).Render(fmt.Sprintf("Best streak: %d        Challenges: %d        Correct: %d/%d",
			sum.BestStreak, sum.Seen, sum.Correct, sum.Answered)),
	}
	if sum.Answered > 0 {
		rows = append(rows, components.Meter("Accuracy", sum.Accuracy, min(width-8, 50)))
	}
	rows = append(rows, components.Pill(leaveLabel, true, 24))

	spaced := make([]string, 0, 2*len(rows))
	for _, r := range rows {
		spaced = append(spaced, r, "")
	}
	body := lipgloss.JoinVertical(lipgloss.Center, spaced...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, body)
}
