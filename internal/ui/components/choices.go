package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

// Choice is one selectable line.
type Choice struct {
	Label string
	Run   func() tea.Cmd
}

// Choices is a vertical list with a cursor. Up/Down (or k/j) move, Enter
// runs the choice under the cursor.
type Choices struct {
	Items  []Choice
	Cursor int
}

// Move shifts the cursor by delta, stopping at either end.
func (c Choices) Move(delta int) Choices {
	if len(c.Items) == 0 {
		return c
	}
	c.Cursor = min(max(c.Cursor+delta, 0), len(c.Items)-1)
	return c
}

func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "up", "k":
		return c.Move(-1), nil
	case "down", "j":
		return c.Move(1), nil
	case "enter":
		if c.Cursor < len(c.Items) && c.Items[c.Cursor].Run != nil {
			return c, c.Items[c.Cursor].Run()
		}
	}
	return c, nil
}

// Lines renders one string per item, the cursor line marked and bold.
func (c Choices) Lines() []string {
	on := theme.Strong(theme.Primary)
	off := theme.Ink(theme.Text)
	out := make([]string, len(c.Items))
	for i, item := range c.Items {
		if i == c.Cursor {
			out[i] = on.Render("  ▸ " + item.Label)
		} else {
			out[i] = off.Render("    " + item.Label)
		}
	}
	return out
}
