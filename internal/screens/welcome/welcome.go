// Package welcome is the splash screen. It spells the app name one letter
// per frame and waits for a key.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

const (
	frameEvery = 120 * time.Millisecond
	name       = "WORD WHIZ KIDS"
	wideBanner = 68
)

const book = `    ___________   ___________
  /            \ /            \
 |  ◉      ◉    |    A B C     |
 |     ◡        |   sh ch th   |
 |   read!      |   wh  ph     |
 |______________|______________|
  \_____________|_____________/
        ~~~~~~~~~~~~~~~~~`

const banner = `
 ██╗    ██╗ ██████╗ ██████╗ ██████╗   ██╗    ██╗██╗  ██╗██╗███████╗
 ██║    ██║██╔═══██╗██╔══██╗██╔══██╗  ██║    ██║██║  ██║██║╚══███╔╝
 ██║ █╗ ██║██║   ██║██████╔╝██║  ██║  ██║ █╗ ██║███████║██║  ███╔╝
 ██║███╗██║██║   ██║██╔══██╗██║  ██║  ██║███╗██║██╔══██║██║ ███╔╝
 ╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝  ╚███╔███╔╝██║  ██║██║███████╗
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝    ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝╚══════╝`

var sparkles = [...]string{"★", "✦"}

type frameMsg time.Time

// WelcomeScreen swaps itself for next() on the first key press.
type WelcomeScreen struct {
	next   func() screen.Screen
	frames int
	left   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Spelled is the part of the name shown so far.
func (w *WelcomeScreen) Spelled() string {
	return name[:min(w.frames, len(name))]
}

// Done reports whether the whole name has been spelled.
func (w *WelcomeScreen) Done() bool {
	return w.frames >= len(name)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		// Frames keep coming after the name is done so the sparkles blink.
		w.frames++
		return w, nextFrame()
	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.left {
		return nil
	}
	w.left = true
	return router.Swap(w.next())
}

// letterSpaced puts a space between every letter: "WORD" -> "W O R D".
func letterSpaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func (w *WelcomeScreen) View(width, height int) string {
	rows := []string{theme.Ink(theme.Primary).Render(book), ""}

	if !w.Done() {
		rows = append(rows, theme.Strong(theme.Primary).Render(letterSpaced(w.Spelled())+"▌"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, rows...))
	}

	title := letterSpaced(name)
	if width >= wideBanner {
		title = banner
	}
	spark := sparkles[w.frames%len(sparkles)]
	rows = append(rows,
		theme.Strong(theme.Primary).Render(title),
		"",
		theme.Ink(theme.Accent).Render(spark)+"  "+
			theme.Strong(theme.Text).Render("Let's make reading fun!")+"  "+
			theme.Ink(theme.Secondary).Render(spark),
		"",
		theme.Ink(theme.TextDim).Italic(true).Render("press any key to continue"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, rows...))
}
