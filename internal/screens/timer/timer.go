// Package timer asks how long the session should run.
package timer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const buttonWidth = 22

// TimerScreen offers the two session lengths.
type TimerScreen struct {
	env     *play.Env
	student roster.Student
	choices components.Choices
}

var _ screen.Screen = (*TimerScreen)(nil)
var _ screen.KeyHintProvider = (*TimerScreen)(nil)

// New creates the timer screen for st.
func New(env *play.Env, st roster.Student) *TimerScreen {
	t := &TimerScreen{env: env, student: st}
	for _, d := range []int{int(session.ShortSession.Minutes()), int(session.LongSession.Minutes())} {
		t.choices.Items = append(t.choices.Items, components.Choice{
			Label: minutesLabel(d),
			Run:   func() tea.Cmd { return env.Start(st, d) },
		})
	}
	return t
}

func minutesLabel(m int) string {
	return fmt.Sprintf("%d Minutes", m)
}

func (t *TimerScreen) Init() tea.Cmd {
	return nil
}

func (t *TimerScreen) Title() string {
	return "Session Length"
}

func (t *TimerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Change Profile"},
	}
}

func (t *TimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return t, router.Back()
	}
	var cmd tea.Cmd
	t.choices, cmd = t.choices.Update(msg)
	return t, cmd
}

func (t *TimerScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Swatch(t.student.Color)).
		Bold(true).
		Render("⏱  Hi "+t.student.Name+"!"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("How long do you want to play today?"))

	var buttons []string
	for i, item := range t.choices.Items {
		buttons = append(buttons, components.Pill(item.Label, i == t.choices.Cursor, buttonWidth))
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Center, buttons...))

	card := components.Card(strings.Join(sections, "\n\n"), components.Column(width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
