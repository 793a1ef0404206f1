package activity

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

// Loading is shown while a challenge is being fetched.
const Loading = "Initializing Mission..."

func (a *ActivityScreen) View(width, height int) string {
	st := a.env.State
	if st.Loading {
		return renderLoading(width, height)
	}
	ch, ok := session.Current(st)
	if !ok {
		return renderLoading(width, height)
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder

	// Heading and position.
	b.WriteString(center.
		Foreground(theme.Sky).
		Bold(true).
		Render(heading(st, ch)))
	b.WriteString("\n")
	b.WriteString(center.
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Challenge %d of %d", st.Cursor+1, len(st.History))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-4, 60)))))
	b.WriteString("\n\n")

	prompt := grading.Display(ch, st.Attempts)

	mainStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if ch.Mode.IsNarrative() {
		mainStyle = lipgloss.NewStyle().
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2).
			Width(min(width-8, 70))
	} else if ch.Mode == challenge.ModeSpell || ch.Mode == challenge.ModeUnitSpelling {
		prompt.Main = "👂 " + prompt.Main
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mainStyle.Render(prompt.Main)))
	b.WriteString("\n\n")

	if prompt.Context != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(min(width-8, 70)).Align(lipgloss.Center).Render(prompt.Context)))
		b.WriteString("\n\n")
	}

	if step := grading.StepPrompt(ch, st.Syllable); step != "" {
		b.WriteString(center.Foreground(theme.Secondary).Render(step))
		b.WriteString("\n\n")
	}

	if prompt.Reveal != "" {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render(prompt.Reveal))
		b.WriteString("\n\n")
	}

	b.WriteString(a.renderAnswerLine(width))
	b.WriteString("\n\n")

	if a.feedback != nil {
		b.WriteString(renderFeedback(*a.feedback, width))
		b.WriteString("\n")
	}
	if st.UnlockPending {
		b.WriteString(center.Foreground(theme.Gold).Bold(true).
			Render("🎮 Word games unlocked! Press Esc to find them on the menu."))
		b.WriteString("\n")
	}
	if a.errMsg != "" {
		b.WriteString(center.Foreground(theme.Error).Render(a.errMsg))
	}

	return b.String()
}

func heading(st session.State, ch challenge.Challenge) string {
	if ch.Mode == challenge.ModeUnitSpelling {
		return fmt.Sprintf("Unit %d Spelling", st.Unit)
	}
	return ch.Mode.Heading()
}

func (a *ActivityScreen) renderAnswerLine(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case a.recording:
		return center.Foreground(theme.Error).Bold(true).
			Render("● Recording... press Ctrl+R to stop")
	case a.listening:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("Listening...")
	}
	return center.Render("Answer: " + a.input.View())
}

// renderFeedback renders the result of the last answer.
func renderFeedback(r grading.Result, width int) string {
	color := theme.Error
	switch r.Outcome {
	case grading.Correct:
		color = theme.Success
	case grading.Advance:
		color = theme.Secondary
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Bold(true).
		Padding(0, 2).
		Width(min(width-8, 70)).
		Align(lipgloss.Center).
		Render(r.Feedback)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + Loading)
}
