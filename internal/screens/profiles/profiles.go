// Package profiles is the roster screen where a learner picks their card
// and, for protected profiles, types a PIN.
package profiles

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/screens/timer"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const (
	columns   = 5
	cardWidth = 14
)

const badPIN = "That PIN is not right. Try again."

// ProfilesScreen lists the roster as a grid of cards.
type ProfilesScreen struct {
	env       *play.Env
	students  []roster.Student
	selected  int
	preselect string

	askingPIN bool
	pin       components.Entry
	errMsg    string
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)

// New creates the roster screen. A non-empty preselect picks that profile
// as soon as the screen opens.
func New(env *play.Env, preselect string) *ProfilesScreen {
	pin := components.NewPIN(roster.PINLength)
	return &ProfilesScreen{
		env:       env,
		students:  roster.All(),
		preselect: preselect,
		pin:       pin,
	}
}

func (p *ProfilesScreen) Init() tea.Cmd {
	if p.preselect == "" {
		return nil
	}
	st, err := roster.Find(p.preselect)
	p.preselect = ""
	if err != nil {
		p.errMsg = "No profile called that. Pick your card."
		return nil
	}
	for i, s := range p.students {
		if s.ID == st.ID {
			p.selected = i
		}
	}
	return p.choose()
}

func (p *ProfilesScreen) Title() string {
	return "Select Your Profile"
}

func (p *ProfilesScreen) KeyHints() []layout.KeyHint {
	if p.askingPIN {
		return []layout.KeyHint{
			{Key: "0-9", Description: "PIN"},
			{Key: "Enter", Description: "Unlock"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Enter", Description: "Pick"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if p.askingPIN {
			var cmd tea.Cmd
			p.pin, cmd = p.pin.Update(msg)
			return p, cmd
		}
		return p, nil
	}

	if p.askingPIN {
		return p, p.handlePINKey(kmsg)
	}

	switch kmsg.String() {
	case "left", "h":
		if p.selected > 0 {
			p.selected--
		}
	case "right", "l":
		if p.selected < len(p.students)-1 {
			p.selected++
		}
	case "up", "k":
		if p.selected-columns >= 0 {
			p.selected -= columns
		}
	case "down", "j":
		if p.selected+columns < len(p.students) {
			p.selected += columns
		}
	case "enter", "space":
		return p, p.choose()
	}
	return p, nil
}

// Selected returns the highlighted profile.
func (p *ProfilesScreen) Selected() roster.Student {
	return p.students[p.selected]
}

func (p *ProfilesScreen) choose() tea.Cmd {
	st := p.Selected()
	p.errMsg = ""
	pop := p.env.Effect(speech.EffectPop)
	if st.RequiresPIN() {
		p.askingPIN = true
		p.pin.Reset()
		return tea.Batch(pop, p.pin.Init())
	}
	return tea.Batch(pop, p.proceed(st))
}

func (p *ProfilesScreen) handlePINKey(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "esc":
		p.askingPIN = false
		p.errMsg = ""
		p.pin.Reset()
		return nil
	case "enter":
		st, err := roster.Verify(p.Selected().ID, p.pin.Value())
		if err != nil {
			p.pin.Reset()
			if errors.Is(err, roster.ErrBadPIN) {
				p.errMsg = badPIN
			} else {
				p.errMsg = err.Error()
			}
			return p.env.Effect(speech.EffectError)
		}
		p.askingPIN = false
		p.errMsg = ""
		return p.proceed(st)
	}
	var cmd tea.Cmd
	p.pin, cmd = p.pin.Update(kmsg)
	return cmd
}

// proceed starts straight away when the session length was given on the
// command line, otherwise asks for it.
func (p *ProfilesScreen) proceed(st roster.Student) tea.Cmd {
	if m := p.env.Minutes; m > 0 {
		return p.env.Start(st, m)
	}
	next := timer.New(p.env, st)
	return router.Open(next)
}

func (p *ProfilesScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true).
		Render("SELECT YOUR PROFILE"))

	var rows []string
	for start := 0; start < len(p.students); start += columns {
		end := min(start+columns, len(p.students))
		var cards []string
		for i := start; i < end; i++ {
			cards = append(cards, renderCard(p.students[i], i == p.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Center, rows...))

	if p.askingPIN {
		st := p.Selected()
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Render(
			"Hi " + st.Name + "! Type your PIN: " + p.pin.View())
		sections = append(sections, components.Card(prompt, 44))
	}

	if p.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true).
			Render(p.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func renderCard(st roster.Student, selected bool) string {
	c := theme.Swatch(st.Color)
	body := st.Icon + "\n" + st.Name
	if st.RequiresPIN() {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒")
	} else {
		body += "\n "
	}

	style := lipgloss.NewStyle().
		Width(cardWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Foreground(c).
		Padding(0, 1).
		Margin(0, 1)
	if selected {
		style = style.
			Border(lipgloss.ThickBorder()).
			Bold(true).
			Background(c).
			Foreground(theme.BgDark)
	}
	return style.Render(body)
}
