package welcome

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
)

type profilesStub struct{}

func (profilesStub) Init() tea.Cmd                          { return nil }
func (p profilesStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (profilesStub) View(int, int) string                   { return "profiles" }
func (profilesStub) Title() string                          { return "Who's Playing?" }

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return profilesStub{}
	}), &built
}

func advance(w *WelcomeScreen, n int) {
	for range n {
		_, cmd := w.Update(frameMsg{})
		if cmd == nil {
			panic("frames should keep ticking")
		}
	}
}

func TestSpellsNameOneLetterPerFrame(t *testing.T) {
	w, _ := newWelcome()
	assert.Empty(t, w.Spelled())

	advance(w, 4)
	assert.Equal(t, "WORD", w.Spelled())
	assert.Contains(t, w.View(100, 30), "W O R D")
	assert.NotContains(t, w.View(100, 30), "press any key")

	advance(w, len(name))
	assert.True(t, w.Done())
	assert.Equal(t, name, w.Spelled())
}

func TestFinishedView(t *testing.T) {
	w, _ := newWelcome()
	advance(w, len(name))

	wide := w.View(100, 30)
	assert.Contains(t, wide, "██╗")
	assert.Contains(t, wide, "Let's make reading fun!")
	assert.Contains(t, wide, "press any key")

	narrow := w.View(60, 30)
	assert.NotContains(t, narrow, "██╗")
	assert.Contains(t, narrow, "W O R D   W H I Z   K I D S")
}

func TestAnyKeySkipsAhead(t *testing.T) {
	w, built := newWelcome()
	advance(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	swap, ok := cmd().(router.SwapMsg)
	require.True(t, ok)
	assert.Equal(t, "Who's Playing?", swap.Screen.Title())
	assert.Equal(t, 1, *built)

	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "only the first key leaves")
	assert.Equal(t, 1, *built)
}

func TestWaitsForKey(t *testing.T) {
	w, built := newWelcome()
	advance(w, 3*len(name))
	assert.Zero(t, *built)
	assert.NotNil(t, w.Init())
	assert.Empty(t, w.Title())
}
