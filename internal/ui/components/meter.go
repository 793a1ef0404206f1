package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

// Meter draws "label ████░░░░  75%" in width columns. frac is clamped
// to 0..1.
func Meter(label string, frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	head := ""
	if label != "" {
		head = theme.Ink(theme.Text).Render(label) + "  "
	}
	pct := fmt.Sprintf("  %d%%", int(frac*100+0.5))

	cells := max(width-lipgloss.Width(head)-len(pct), 4)
	full := int(float64(cells) * frac)

	return head +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", full)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-full)) +
		theme.Ink(theme.TextDim).Render(pct)
}
