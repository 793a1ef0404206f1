package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/screens/menu"
	"github.com/wordwhizkids/wordwhiz/internal/screens/profiles"
	"github.com/wordwhizkids/wordwhiz/internal/screens/summary"
	"github.com/wordwhizkids/wordwhiz/internal/screens/welcome"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
)

// CrashMessage is printed when the program dies unexpectedly.
const CrashMessage = "Something went wrong. Please restart wordwhiz."

// Options configures the app.
type Options struct {
	Env *play.Env

	// Student preselects a roster profile by ID.
	Student string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *play.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	env.NewRoster = func() screen.Screen { return profiles.New(env, "") }
	env.NewMenu = func() screen.Screen { return menu.New(env) }
	env.NewSummary = func() screen.Screen {
		return summary.New(session.BuildSummary(env.State), env.GoHome)
	}

	student := opts.Student
	first := welcome.New(func() screen.Screen { return profiles.New(env, student) })
	return AppModel{
		env:    env,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), play.Tick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case play.TickMsg:
		if m.env.Advance(play.TickInterval) {
			return m, tea.Batch(m.env.Finish(), play.Tick())
		}
		return m, play.Tick()

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.env.Stop()
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render draws the whole frame, or nothing before the first resize.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if !layout.Fits(m.width, m.height) {
		return layout.TooSmall(m.width, m.height)
	}

	active := m.router.Active()
	hints := append(hintsFor(active), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	header := layout.Header(active.Title(), m.env.Status(), m.width)
	footer := layout.Footer(hints, m.width)
	body := active.View(m.width, layout.BodyHeight(header, footer, m.height))
	return layout.Compose(header, body, footer, m.width, m.height)
}

func hintsFor(s screen.Screen) []layout.KeyHint {
	if hp, ok := s.(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	return nil
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) (err error) {
	logger := opts.Env.Logger
	defer func() {
		if r := recover(); r != nil {
			logger.Error("program panicked", zap.Any("panic", r), zap.Stack("stack"))
			fmt.Fprintln(os.Stderr, CrashMessage)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err = p.Run()
	opts.Env.Stop()

	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return nil
	case errors.Is(err, tea.ErrProgramPanic):
		logger.Error("program panicked", zap.Error(err))
		fmt.Fprintln(os.Stderr, CrashMessage)
		return err
	}
	fmt.Fprintln(os.Stderr, "Error running program:", err)
	return err
}
