// Package layout draws the chrome around every screen: the title bar with
// the learner's clock and cuudoos, and the key-hint footer.
package layout

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

// Smallest terminal the screens are drawn for.
const (
	MinWidth  = 80
	MinHeight = 24
)

const brand = "  Word Whiz Kids"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the learner summary shown on the right of the header. The
// zero value hides it.
type Status struct {
	Student   string
	Remaining time.Duration
	Score     int
	Streak    int
}

// Fits reports whether a width x height terminal can hold a screen.
func Fits(width, height int) bool {
	return width >= MinWidth && height >= MinHeight
}

// TooSmall asks the learner to grow the window.
func TooSmall(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("The window is too small to play.\n\nMake it at least %d x %d.\n\nNow: %d x %d",
			MinWidth, MinHeight, width, height))
}

// Clock renders d as m:ss, rounding partial seconds up so the display
// never shows 0:00 while time remains.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (s Status) render() string {
	if s.Student == "" {
		return ""
	}
	parts := []string{
		theme.Ink(theme.Secondary).Render(s.Student),
		theme.Ink(theme.Text).Render("⏱ " + Clock(s.Remaining)),
		theme.Ink(theme.Gold).Render(fmt.Sprintf("🏆 %d", s.Score)),
		theme.Ink(theme.Accent).Render(fmt.Sprintf("★ %d", s.Streak)),
	}
	return strings.Join(parts, "   ")
}

// Header puts the brand on the left, title in the middle and the
// learner status on the right.
func Header(title string, st Status, width int) string {
	left := theme.Strong(theme.Primary).Render(brand)
	mid := theme.Ink(theme.Text).Render(title)
	right := st.render()

	inner := max(width-4, 0)
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	before := max((inner-mw)/2-lw, 1)
	after := max(inner-lw-before-mw-rw, 1)

	return bar(left+strings.Repeat(" ", before)+mid+strings.Repeat(" ", after)+right, width)
}

// Footer lists the key hints.
func Footer(hints []KeyHint, width int) string {
	keys := theme.Strong(theme.Text)
	desc := theme.Ink(theme.TextDim)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keys.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// BodyHeight is what is left for a screen between header and footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// Compose stacks header, body and footer into one frame, padding the body
// so the footer sits on the last rows.
func Compose(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
