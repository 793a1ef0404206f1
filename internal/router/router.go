// Package router keeps the stack of screens a learner has walked through.
// Screens never hold each other; they ask for navigation with the commands
// below and the router applies it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/wordwhizkids/wordwhiz/internal/screen"
)

// OpenMsg stacks Screen on top of the current one.
type OpenMsg struct {
	Screen screen.Screen
}

// BackMsg returns to the screen underneath.
type BackMsg struct{}

// SwapMsg replaces the top screen with Screen.
type SwapMsg struct {
	Screen screen.Screen
}

// RestartMsg drops the whole stack and starts over at Screen.
type RestartMsg struct {
	Screen screen.Screen
}

// Open returns a command that opens s.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Screen: s} }
}

// Back returns a command that leaves the top screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Swap returns a command that replaces the top screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return SwapMsg{Screen: s} }
}

// Restart returns a command that makes s the only screen.
func Restart(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return RestartMsg{Screen: s} }
}

// Router owns the stack. It is never empty.
type Router struct {
	screens []screen.Screen
}

// New starts a stack at first.
func New(first screen.Screen) *Router {
	return &Router{screens: []screen.Screen{first}}
}

// Active is the screen on top.
func (r *Router) Active() screen.Screen {
	return r.screens[len(r.screens)-1]
}

// Depth is the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.screens)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	top := len(r.screens) - 1
	switch msg := msg.(type) {
	case OpenMsg:
		r.screens = append(r.screens, msg.Screen)
		return msg.Screen.Init()
	case BackMsg:
		// The bottom screen stays put.
		if top > 0 {
			r.screens = r.screens[:top]
		}
		return nil
	case SwapMsg:
		r.screens[top] = msg.Screen
		return msg.Screen.Init()
	case RestartMsg:
		r.screens = []screen.Screen{msg.Screen}
		return msg.Screen.Init()
	}

	next, cmd := r.screens[top].Update(msg)
	r.screens[top] = next
	return cmd
}

// View draws the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
