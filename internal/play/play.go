// Package play holds the state shared by the screens of a running game:
// the learner session, the challenge resolver and the speech kit.
package play

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
)

// TickInterval is how often the session clock advances.
const TickInterval = time.Second

// TickMsg advances the session clock.
type TickMsg time.Time

// ChallengeMsg carries the result of a background fetch.
type ChallengeMsg struct {
	Token     int
	Challenge challenge.Challenge
}

// Env is shared by pointer between all screens of one program.
type Env struct {
	Ctx      context.Context
	Resolver *challenge.Resolver
	Bank     *challenge.Bank
	Speech   speech.Kit
	Logger   *zap.Logger
	Online   bool

	// Minutes preselects the session length; 0 asks on the timer screen.
	Minutes int

	// Language is the starting target language for new sessions.
	Language string

	State   session.State
	Student roster.Student

	// Screen constructors, filled in by the app.
	NewRoster  func() screen.Screen
	NewMenu    func() screen.Screen
	NewSummary func() screen.Screen
}

// New creates an Env with an empty session. logger may be nil.
func New(ctx context.Context, resolver *challenge.Resolver, bank *challenge.Bank, kit speech.Kit, logger *zap.Logger, online bool) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		Ctx:      ctx,
		Resolver: resolver,
		Bank:     bank,
		Speech:   kit,
		Logger:   logger,
		Online:   online,
		State:    session.Empty(),
	}
}

// Status returns the header summary for the current state.
func (e *Env) Status() layout.Status {
	if e.State.Student == "" {
		return layout.Status{}
	}
	return layout.Status{
		Student:   e.State.Student,
		Remaining: e.State.Remaining,
		Score:     e.State.Score,
		Streak:    e.State.Streak,
	}
}

// WelcomeLine is spoken when a session starts.
func WelcomeLine(name string, minutes int) string {
	return fmt.Sprintf("Welcome back, %s! Let's have fun learning for %d minutes.", name, minutes)
}

// Start begins a session for st and moves to the menu.
func (e *Env) Start(st roster.Student, minutes int) tea.Cmd {
	token := e.State.FetchToken
	e.Student = st
	e.State = session.SetLanguage(session.New(st.Name, minutes, e.Online), e.Language)
	e.State.FetchToken = token
	e.Logger.Info("session started",
		zap.String("session_id", e.State.SessionID),
		zap.String("student", st.ID),
		zap.Int("minutes", minutes),
		zap.Bool("online", e.Online),
	)
	return tea.Batch(
		e.Effect(speech.EffectMagic),
		e.Say(WelcomeLine(st.Name, minutes)),
		e.reset(e.NewMenu),
	)
}

// GoHome ends the session and returns to the roster.
func (e *Env) GoHome() tea.Cmd {
	e.Stop()
	if e.State.SessionID != "" {
		e.Logger.Info("session closed", zap.String("session_id", e.State.SessionID))
	}
	e.State = session.GoHome(e.State)
	e.Student = roster.Student{}
	e.Resolver.Discard()
	return e.reset(e.NewRoster)
}

// Finish shows the summary for the session that just ran out.
func (e *Env) Finish() tea.Cmd {
	e.Stop()
	sum := session.BuildSummary(e.State)
	e.Logger.Info("session finished",
		zap.String("session_id", e.State.SessionID),
		zap.Int("score", sum.Score),
		zap.Int("best_streak", sum.BestStreak),
		zap.Int("seen", sum.Seen),
	)
	return e.reset(e.NewSummary)
}

func (e *Env) reset(factory func() screen.Screen) tea.Cmd {
	if factory == nil {
		return nil
	}
	s := factory()
	return router.Restart(s)
}

// Advance applies one clock tick and reports whether the session has just
// run out.
func (e *Env) Advance(elapsed time.Duration) bool {
	if e.State.Duration <= 0 || session.Expired(e.State) {
		return false
	}
	e.State = session.Tick(e.State, elapsed)
	return session.Expired(e.State)
}

// Tick schedules the next clock tick.
func Tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Fetch resolves a challenge in the background for the in-flight fetch
// identified by token.
func (e *Env) Fetch(token int) tea.Cmd {
	req := session.Request(e.State)
	ctx := e.Ctx
	return func() tea.Msg {
		return ChallengeMsg{Token: token, Challenge: e.Resolver.Fetch(ctx, req)}
	}
}

// Say narrates text without blocking the UI.
func (e *Env) Say(text string) tea.Cmd {
	n := e.Speech.Narrator
	if n == nil || text == "" {
		return nil
	}
	ctx := e.Ctx
	return func() tea.Msg {
		n.Say(ctx, text)
		return nil
	}
}

// Effect plays a sound effect without blocking the UI.
func (e *Env) Effect(fx speech.Effect) tea.Cmd {
	n := e.Speech.Narrator
	if n == nil {
		return nil
	}
	ctx := e.Ctx
	return func() tea.Msg {
		n.Play(ctx, fx)
		return nil
	}
}

// Stop silences anything playing.
func (e *Env) Stop() {
	e.Speech.Narrator.Stop()
}
