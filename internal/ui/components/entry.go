package components

import (
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Entry is the focused one-line answer box.
type Entry struct {
	Model  textinput.Model
	digits bool
}

// NewEntry returns a focused entry holding at most limit characters, or
// any number when limit is zero.
func NewEntry(placeholder string, limit int) Entry {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return Entry{Model: m}
}

// NewPIN returns a masked entry that accepts only n digits.
func NewPIN(n int) Entry {
	e := NewEntry("PIN", n)
	e.digits = true
	e.Model.EchoMode = textinput.EchoPassword
	e.Model.EchoCharacter = '•'
	return e
}

func (e Entry) Init() tea.Cmd {
	return e.Model.Focus()
}

func (e Entry) Update(msg tea.Msg) (Entry, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && e.digits && key.Text != "" {
		for _, r := range key.Text {
			if !unicode.IsDigit(r) {
				return e, nil
			}
		}
	}
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

func (e Entry) View() string {
	return e.Model.View()
}

func (e Entry) Value() string {
	return e.Model.Value()
}

// Reset clears the typed text.
func (e *Entry) Reset() {
	e.Model.Reset()
}
