package activity

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/router"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
)

func newTestEnv(t *testing.T) *play.Env {
	t.Helper()
	bank := challenge.NewBank(map[challenge.ModeID][]challenge.Payload{
		challenge.ModeSpell: {challenge.Spelling{Word: "happy", Context: "I am happy today."}},
	}, nil)
	env := play.New(context.Background(), challenge.NewResolver(nil, bank), bank, speech.Kit{}, nil, false)
	st, err := roster.Find("ana")
	if err != nil {
		t.Fatal(err)
	}
	env.Start(st, 20)
	return env
}

// started returns an activity whose first challenge has been applied.
func started(t *testing.T, env *play.Env, mode challenge.ModeID) *ActivityScreen {
	t.Helper()
	a := New(env, mode)
	a.Init()
	deliver(a, env)
	return a
}

// deliver runs the in-flight fetch and feeds the result to a.
func deliver(a *ActivityScreen, env *play.Env) tea.Cmd {
	msg := env.Fetch(env.State.FetchToken)()
	_, cmd := a.Update(msg)
	return cmd
}

func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func popped(cmd tea.Cmd) bool {
	for _, msg := range messages(cmd) {
		if _, ok := msg.(router.BackMsg); ok {
			return true
		}
	}
	return false
}

func answer(a *ActivityScreen, text string) {
	a.input.Model.SetValue(text)
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
}

func TestLoadingView(t *testing.T) {
	env := newTestEnv(t)
	a := New(env, challenge.ModeSpell)
	a.Init()

	if !env.State.Loading {
		t.Fatal("Init should start a fetch")
	}
	if !strings.Contains(a.View(100, 30), Loading) {
		t.Error("view should show the loading indicator")
	}
	if len(a.KeyHints()) != 2 {
		t.Errorf("loading hints = %d, want 2", len(a.KeyHints()))
	}
}

func TestChallengeApplied(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	if env.State.Loading {
		t.Fatal("fetch should be finished")
	}
	if len(env.State.History) != 1 || env.State.Cursor != 0 {
		t.Fatalf("History = %d, Cursor = %d", len(env.State.History), env.State.Cursor)
	}
	view := a.View(100, 30)
	if !strings.Contains(view, "Challenge 1 of 1") {
		t.Error("view should show the position in history")
	}
	if !strings.Contains(view, "Answer:") {
		t.Error("view should show the answer input")
	}
}

func TestStaleChallengeIgnored(t *testing.T) {
	env := newTestEnv(t)
	a := New(env, challenge.ModeSpell)
	a.Init()
	token := env.State.FetchToken

	stale := play.ChallengeMsg{
		Token:     token - 1,
		Challenge: challenge.New(challenge.ModeSpell, challenge.Spelling{Word: "old", Context: "Old."}, challenge.SourceOffline),
	}
	a.Update(stale)

	if !env.State.Loading || len(env.State.History) != 0 {
		t.Error("a result for a superseded fetch must be dropped")
	}
}

func TestCorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	answer(a, "h a p p y")

	if a.feedback == nil || a.feedback.Outcome != grading.Correct {
		t.Fatalf("feedback = %+v, want correct", a.feedback)
	}
	if env.State.Score != grading.Award || env.State.Streak != 1 {
		t.Errorf("Score = %d, Streak = %d", env.State.Score, env.State.Streak)
	}
	if a.input.Value() != "" {
		t.Error("input should clear after grading")
	}
	if !strings.Contains(a.View(100, 30), "Excellent work") {
		t.Error("view should show success feedback")
	}
}

func TestIncorrectAnswer(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	answer(a, "hapy")

	if a.feedback == nil || a.feedback.Outcome != grading.Incorrect {
		t.Fatalf("feedback = %+v, want incorrect", a.feedback)
	}
	if env.State.Attempts != 1 || env.State.Score != 0 {
		t.Errorf("Attempts = %d, Score = %d", env.State.Attempts, env.State.Score)
	}
	if !strings.Contains(a.feedback.Feedback, "starts with the letter H") {
		t.Errorf("Feedback = %q", a.feedback.Feedback)
	}
}

func TestEmptyEnterCountsAsSilence(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	answer(a, "")

	if a.feedback == nil || a.feedback.Speech != grading.SilenceSpeech {
		t.Fatalf("feedback = %+v, want silence", a.feedback)
	}
}

func TestEnterAfterCorrectMovesOn(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	answer(a, "happy")
	token := env.State.FetchToken

	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if a.feedback != nil {
		t.Error("feedback should be dismissed")
	}
	if !env.State.Loading || env.State.FetchToken != token+1 {
		t.Error("an empty Enter after a correct answer should fetch the next challenge")
	}
}

func TestSolvedChallengeIsNotGradedAgain(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	answer(a, "happy")
	token := env.State.FetchToken

	a.Update(transcriptMsg{Text: "happy"})
	if env.State.Score != grading.Award {
		t.Fatalf("Score = %d, a solved challenge must not score twice", env.State.Score)
	}
	if a.KeyHints()[0].Description != "Next" {
		t.Errorf("Enter hint = %q, want Next", a.KeyHints()[0].Description)
	}

	answer(a, "happy")
	if env.State.Score != grading.Award {
		t.Errorf("Score = %d after a second typed answer", env.State.Score)
	}
	if !env.State.Loading || env.State.FetchToken != token+1 {
		t.Error("Enter on a solved challenge should move on")
	}
}

func TestPreviousChallengeCanBeAnsweredAgain(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	answer(a, "happy")
	a.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	deliver(a, env)

	a.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	answer(a, "happy")

	if env.State.Score != 2*grading.Award {
		t.Errorf("Score = %d, want %d", env.State.Score, 2*grading.Award)
	}
}

func TestEnterAfterMissDismisses(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	answer(a, "nope")

	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if a.feedback != nil {
		t.Error("feedback should be dismissed")
	}
	if env.State.Loading {
		t.Error("a miss should stay on the same challenge")
	}
}

func TestNextAndPrevious(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	a.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if !env.State.Loading {
		t.Fatal("Ctrl+N at the newest challenge should fetch")
	}
	deliver(a, env)
	if len(env.State.History) != 2 || env.State.Cursor != 1 {
		t.Fatalf("History = %d, Cursor = %d", len(env.State.History), env.State.Cursor)
	}

	a.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	if env.State.Cursor != 0 {
		t.Errorf("Cursor = %d after Ctrl+P, want 0", env.State.Cursor)
	}

	a.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if env.State.Loading || env.State.Cursor != 1 {
		t.Errorf("Ctrl+N inside history should move without fetching, Cursor = %d", env.State.Cursor)
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	env := newTestEnv(t)
	a := New(env, challenge.ModeSpell)
	a.Init()
	token := env.State.FetchToken

	a.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if env.State.FetchToken != token {
		t.Error("a second fetch must not start while one is in flight")
	}
}

func TestEscReturnsToMenu(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	answer(a, "happy")

	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if !popped(cmd) {
		t.Fatal("Esc should pop back to the menu")
	}
	if env.State.Mode != "" {
		t.Errorf("Mode = %q, want empty on the menu", env.State.Mode)
	}
	if env.State.Score != grading.Award {
		t.Error("leaving to the menu must keep the score")
	}
}

func TestNoContentReturnsToMenu(t *testing.T) {
	env := newTestEnv(t)
	a := New(env, challenge.ModeDictation)
	a.Init()

	cmd := deliver(a, env)

	if !popped(cmd) {
		t.Fatal("no content should pop back to the menu")
	}
	if env.State.Notice != session.ConnectionFailed {
		t.Errorf("Notice = %q, want %q", env.State.Notice, session.ConnectionFailed)
	}
	if len(env.State.History) != 0 {
		t.Error("the no-content sentinel must not enter history")
	}
}

func TestRecordWithoutMicrophone(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)

	a.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})

	if a.recording {
		t.Error("cannot record without a recorder")
	}
	if a.errMsg != noMicrophone {
		t.Errorf("errMsg = %q, want %q", a.errMsg, noMicrophone)
	}
}

func TestTranscriptIsGraded(t *testing.T) {
	env := newTestEnv(t)
	a := started(t, env, challenge.ModeSpell)
	a.listening = true

	a.Update(transcriptMsg{Text: "happy"})

	if a.listening {
		t.Error("listening should end when the transcript arrives")
	}
	if a.feedback == nil || a.feedback.Outcome != grading.Correct {
		t.Fatalf("feedback = %+v, want correct", a.feedback)
	}
}

func TestUnitSpellingHeading(t *testing.T) {
	env := newTestEnv(t)
	env.State = session.SetUnit(env.State, 4)
	bank := challenge.NewBank(nil, map[int][]string{4: {"train"}})
	env.Resolver = challenge.NewResolver(nil, bank)

	a := started(t, env, challenge.ModeUnitSpelling)

	if !strings.Contains(a.View(100, 30), "Unit 4 Spelling") {
		t.Error("unit spelling heading should name the unit")
	}
}
