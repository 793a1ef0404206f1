// Package menu is the training-module picker shown once a session starts.
package menu

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/screens/activity"
	"github.com/wordwhizkids/wordwhiz/internal/screens/games"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const (
	gamesLabel  = "🎮 Word Games"
	logoutLabel = "🏠 Log Out"
)

// MenuScreen lists the modes available to the current student.
type MenuScreen struct {
	env      *play.Env
	selected int
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the menu screen.
func New(env *play.Env) *MenuScreen {
	return &MenuScreen{env: env}
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Title() string {
	return "Select Training Module"
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "←→", Description: "Unit"},
		{Key: "L", Description: "Language"},
		{Key: "Ctrl+G", Description: "Home"},
	}
}

// Modes returns the modes offered to the current student in menu order.
func (m *MenuScreen) Modes() []challenge.ModeID {
	var out []challenge.ModeID
	for _, mode := range challenge.AllModes() {
		if mode.TeacherOnly() && !m.env.Student.IsTeacher() {
			continue
		}
		out = append(out, mode)
	}
	return out
}

func (m *MenuScreen) menu() components.Choices {
	var items []components.Choice
	for _, mode := range m.Modes() {
		items = append(items, components.Choice{
			Label: mode.Icon() + " " + mode.Label(),
			Run:   m.open(mode),
		})
	}
	if m.env.State.GamesUnlocked {
		items = append(items, components.Choice{
			Label: gamesLabel,
			Run: func() tea.Cmd {
				next := games.New(m.env)
				return router.Open(next)
			},
		})
	}
	items = append(items, components.Choice{Label: logoutLabel, Run: m.env.GoHome})
	return components.Choices{Items: items, Cursor: min(m.selected, len(items)-1)}
}

func (m *MenuScreen) open(mode challenge.ModeID) func() tea.Cmd {
	return func() tea.Cmd {
		next := activity.New(m.env, mode)
		return router.Open(next)
	}
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	// Any key acknowledges one-shot banners.
	m.env.State = session.ClearNotice(session.AckUnlock(m.env.State))

	switch kmsg.String() {
	case "left":
		m.env.State = session.SetUnit(m.env.State, m.env.State.Unit-1)
		return m, nil
	case "right":
		m.env.State = session.SetUnit(m.env.State, m.env.State.Unit+1)
		return m, nil
	case "l", "L":
		m.env.State = session.CycleLanguage(m.env.State)
		return m, nil
	case "ctrl+g":
		return m, m.env.GoHome()
	}

	menu, cmd := m.menu().Update(kmsg)
	m.selected = menu.Cursor
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	st := m.env.State
	cw := components.Column(width)
	var sections []string

	if st.Notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render(st.Notice))
	}
	if st.UnlockPending {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Gold).
			Bold(true).
			Render("🎮 Word games unlocked! Find them at the bottom of the menu."))
	}

	// Two columns keep every module on screen at the minimum terminal size.
	lines := m.menu().Lines()
	half := (len(lines) + 1) / 2
	col := lipgloss.NewStyle().Width(cw / 2)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		col.Render(strings.Join(lines[:half], "\n")),
		col.Render(strings.Join(lines[half:], "\n")),
	))

	settings := fmt.Sprintf("Current Unit: %s %d %s     Language: %s",
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("◂"),
		st.Unit,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("▸"),
		lipgloss.NewStyle().Foreground(theme.Sky).Render(st.Language),
	)
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Text).Render(settings))

	if !st.Online {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Offline practice: questions come from the built-in word bank."))
	}

	return components.Chalkboard(strings.Join(sections, "\n\n"), width, height)
}
