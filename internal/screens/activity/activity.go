// Package activity runs challenges for one mode: fetch, narrate, take a
// typed or spoken answer and grade it.
package activity

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/screen"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
	"github.com/wordwhizkids/wordwhiz/internal/ui/components"
	"github.com/wordwhizkids/wordwhiz/internal/ui/layout"
)

const (
	noMicrophone = "No microphone found. Type your answer instead."
	micFailed    = "The microphone did not start. Type your answer instead."
)

// ActivityScreen implements screen.Screen for an active mode.
type ActivityScreen struct {
	env   *play.Env
	mode  challenge.ModeID
	input components.Entry

	feedback  *grading.Result
	solved    bool // current challenge answered correctly; submits are ignored
	recording bool
	listening bool
	errMsg    string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates an activity screen that starts by fetching a challenge for mode.
func New(env *play.Env, mode challenge.ModeID) *ActivityScreen {
	return &ActivityScreen{
		env:   env,
		mode:  mode,
		input: components.NewEntry("Type your answer...", 80),
	}
}

func (a *ActivityScreen) Init() tea.Cmd {
	return tea.Batch(
		a.begin(a.mode),
		a.input.Init(),
	)
}

func (a *ActivityScreen) Title() string {
	mode := a.env.State.Mode
	if mode == "" {
		mode = a.mode
	}
	return mode.Label()
}

func (a *ActivityScreen) KeyHints() []layout.KeyHint {
	if a.env.State.Loading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Menu"},
			{Key: "Ctrl+G", Description: "Home"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	if a.solved {
		hints[0].Description = "Next"
	}
	if a.env.Speech.Recorder != nil {
		hints = append(hints, layout.KeyHint{Key: "^R", Description: "Speak"})
	}
	return append(hints,
		layout.KeyHint{Key: "^H", Description: "Hint"},
		layout.KeyHint{Key: "^P/^N", Description: "Prev/Next"},
		layout.KeyHint{Key: "^T", Description: "Again"},
		layout.KeyHint{Key: "Esc", Description: "Menu"},
		layout.KeyHint{Key: "^G", Description: "Home"},
	)
}

func (a *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case play.ChallengeMsg:
		return a, a.handleChallenge(msg)

	case transcriptMsg:
		a.listening = false
		if msg.Err != nil && !errors.Is(msg.Err, speech.ErrNoAudio) {
			a.env.Logger.Warn("transcription failed", zap.Error(msg.Err))
		}
		return a, a.submit(msg.Text)

	case tea.KeyPressMsg:
		return a, a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// begin starts a foreground fetch for mode.
func (a *ActivityScreen) begin(mode challenge.ModeID) tea.Cmd {
	st, token, ok := session.BeginFetch(a.env.State, mode)
	if !ok {
		return nil
	}
	a.env.State = st
	a.clear()
	return a.env.Fetch(token)
}

func (a *ActivityScreen) handleChallenge(msg play.ChallengeMsg) tea.Cmd {
	st := a.env.State
	if !st.Loading || msg.Token != st.FetchToken {
		return nil
	}
	a.env.State = session.ApplyChallenge(st, msg.Token, msg.Challenge)
	if msg.Challenge.IsNoContent() {
		a.env.Logger.Info("no content for mode", zap.String("mode", string(msg.Challenge.Mode)))
		return tea.Batch(
			a.env.Effect(speech.EffectError),
			a.env.Say(session.ConnectionFailed),
			router.Back(),
		)
	}
	a.env.Logger.Debug("challenge shown",
		zap.String("id", msg.Challenge.ID),
		zap.String("mode", string(msg.Challenge.Mode)),
		zap.String("source", string(msg.Challenge.Source)),
	)
	return a.narrate()
}

func (a *ActivityScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.stopRecording()
		a.env.Stop()
		a.env.State = session.GoMenu(a.env.State)
		return router.Back()
	case "ctrl+g":
		a.stopRecording()
		return a.env.GoHome()
	}

	if a.env.State.Loading || a.listening {
		return nil
	}

	switch msg.String() {
	case "enter":
		if a.solved {
			return a.next()
		}
		if a.feedback != nil && a.input.Value() == "" {
			a.feedback = nil
			return nil
		}
		return a.submit(a.input.Value())
	case "ctrl+r":
		return a.toggleRecording()
	case "ctrl+p":
		a.env.State = session.GoPrevious(a.env.State)
		a.clear()
		return a.narrate()
	case "ctrl+n":
		return a.next()
	case "ctrl+t":
		a.env.State = session.Restart(a.env.State)
		a.clear()
		return a.narrate()
	case "ctrl+h":
		if ch, ok := session.Current(a.env.State); ok {
			return a.env.Say(grading.Hint(ch))
		}
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// next moves forward through history, fetching when at the newest challenge.
func (a *ActivityScreen) next() tea.Cmd {
	if session.AtTail(a.env.State) {
		mode := a.env.State.Mode
		if mode == "" {
			mode = a.mode
		}
		return a.begin(mode)
	}
	a.env.State = session.GoNext(a.env.State, nil)
	a.clear()
	return a.narrate()
}

// submit grades raw against the current challenge.
func (a *ActivityScreen) submit(raw string) tea.Cmd {
	ch, ok := session.Current(a.env.State)
	if !ok || a.solved {
		return nil
	}
	mode := a.env.State.Mode
	r := grading.Grade(mode, ch, a.env.State.Syllable, raw).WithStudent(a.env.State.Student)
	grading.Record(mode, r)

	st, ev := session.ApplyGrade(a.env.State, r)
	a.env.State = st
	a.feedback = &r
	a.solved = r.Outcome == grading.Correct
	a.errMsg = ""
	a.input.Reset()

	a.env.Logger.Debug("answer graded",
		zap.String("id", ch.ID),
		zap.String("mode", string(mode)),
		zap.String("outcome", string(r.Outcome)),
		zap.Int("score", st.Score),
		zap.Int("streak", st.Streak),
	)
	if ev.Unlocked {
		a.env.Logger.Info("games unlocked", zap.String("session_id", st.SessionID))
	}

	var fx speech.Effect
	switch r.Outcome {
	case grading.Correct:
		fx = speech.EffectWin
		if ev.Unlocked {
			fx = speech.EffectMagic
		}
	case grading.Advance:
		fx = speech.EffectPop
	default:
		fx = speech.EffectError
	}
	return tea.Batch(a.env.Effect(fx), a.env.Say(r.Speech))
}

func (a *ActivityScreen) toggleRecording() tea.Cmd {
	rec := a.env.Speech.Recorder
	if rec == nil {
		a.errMsg = noMicrophone
		return nil
	}

	if !a.recording {
		a.env.Stop()
		if err := rec.Start(); err != nil {
			a.env.Logger.Warn("recorder start failed", zap.Error(err))
			a.errMsg = micFailed
			return nil
		}
		a.recording = true
		a.errMsg = ""
		a.feedback = nil
		return nil
	}

	a.recording = false
	a.listening = true
	audio, recErr := rec.Stop()
	hint := ""
	if ch, ok := session.Current(a.env.State); ok {
		hint = ch.Context()
	}
	t := a.env.Speech.Transcriber
	ctx := a.env.Ctx
	return func() tea.Msg {
		if recErr != nil {
			return transcriptMsg{Text: speech.Silence, Err: recErr}
		}
		text, err := speech.TranscribeOrSilence(ctx, t, audio, speech.RecordMIMEType, hint)
		return transcriptMsg{Text: text, Err: err}
	}
}

func (a *ActivityScreen) stopRecording() {
	if !a.recording {
		return
	}
	a.recording = false
	if _, err := a.env.Speech.Recorder.Stop(); err != nil && !errors.Is(err, speech.ErrNoAudio) {
		a.env.Logger.Warn("recorder stop failed", zap.Error(err))
	}
}

func (a *ActivityScreen) narrate() tea.Cmd {
	ch, ok := session.Current(a.env.State)
	if !ok {
		return nil
	}
	return a.env.Say(grading.Narration(ch, a.env.State.Student))
}

func (a *ActivityScreen) clear() {
	a.feedback = nil
	a.solved = false
	a.errMsg = ""
	a.input.Reset()
}
