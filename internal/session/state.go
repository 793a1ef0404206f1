package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
)

// Session lengths offered on the timer screen.
const (
	ShortSession = 20 * time.Minute
	LongSession  = 30 * time.Minute
)

// UnlockStreak is the streak that unlocks the games corner.
const UnlockStreak = 3

// ConnectionFailed is shown when no source could supply a challenge.
const ConnectionFailed = "Connection failed. Please try again."

// Languages the menu cycles through.
var Languages = []string{"English", "Spanish", "French", "Portuguese", "Chinese"}

// State is the whole learner session. It is a plain value: every operation
// in this package returns a new State and leaves its argument untouched.
type State struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Student is the display name of the active learner ("" before login).
	Student string

	// Duration is the chosen session length; Remaining counts down to zero.
	Duration  time.Duration
	Remaining time.Duration

	// Score is the cuudoo total.
	Score int

	// Streak counts consecutive correct answers since the last miss.
	Streak     int
	BestStreak int

	// Attempts counts misses on the current challenge.
	Attempts int

	// GamesUnlocked latches once Streak first reaches UnlockStreak.
	// UnlockPending stays set until the UI acknowledges the unlock.
	GamesUnlocked bool
	UnlockPending bool

	// Mode is the active mode; empty means the learner is on the menu.
	Mode     challenge.ModeID
	Unit     int
	Language string
	Online   bool

	// History holds every challenge shown; Cursor indexes it, -1 when empty.
	History []challenge.Challenge
	Cursor  int

	// Syllable is the walk position within the current syllable challenge.
	Syllable grading.SyllableProgress

	// Loading is set while a foreground fetch is in flight. FetchToken
	// identifies that fetch; results carrying another token are dropped.
	Loading    bool
	FetchToken int

	// Notice is a one-shot message for the menu (e.g. ConnectionFailed).
	Notice string

	Answered int
	Correct  int
}

// Empty returns the pre-login state.
func Empty() State {
	return State{Cursor: -1, Unit: 1, Language: challenge.DefaultLanguage}
}

// New starts a session for student lasting the given number of minutes.
func New(student string, minutes int, online bool) State {
	s := Empty()
	s.SessionID = uuid.NewString()
	s.Student = student
	s.Duration = time.Duration(minutes) * time.Minute
	s.Remaining = s.Duration
	s.Online = online
	return s
}

// Request builds the resolver request for the state's mode.
func Request(s State) challenge.Request {
	return challenge.Request{
		Mode:     s.Mode,
		Unit:     s.Unit,
		Language: s.Language,
		Student:  s.Student,
		Online:   s.Online,
	}
}

// Current returns the challenge under the cursor.
func Current(s State) (challenge.Challenge, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return challenge.Challenge{}, false
	}
	return s.History[s.Cursor], true
}

// AtTail reports whether the cursor is on the newest challenge (or the
// history is empty), so moving forward needs a fetch.
func AtTail(s State) bool {
	return s.Cursor >= len(s.History)-1
}

// RevealAnswer reports whether the current answer should be shown.
func RevealAnswer(s State) bool {
	return s.Attempts >= grading.RevealAfter
}

// Expired reports whether the session timer has run out.
func Expired(s State) bool {
	return s.Duration > 0 && s.Remaining <= 0
}

// Tick counts elapsed off the remaining time.
func Tick(s State, elapsed time.Duration) State {
	s.Remaining -= elapsed
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	return s
}

// SetUnit selects a spelling unit, clamped to the available range.
func SetUnit(s State, unit int) State {
	s.Unit = min(max(unit, 1), challenge.MaxUnit)
	return s
}

// SetLanguage selects the target language for generated content.
func SetLanguage(s State, lang string) State {
	if lang == "" {
		lang = challenge.DefaultLanguage
	}
	s.Language = lang
	return s
}

// CycleLanguage moves to the next entry of Languages.
func CycleLanguage(s State) State {
	i := slices.Index(Languages, s.Language)
	return SetLanguage(s, Languages[(i+1)%len(Languages)])
}

// AckUnlock clears the pending unlock banner.
func AckUnlock(s State) State {
	s.UnlockPending = false
	return s
}

// ClearNotice drops the one-shot menu message.
func ClearNotice(s State) State {
	s.Notice = ""
	return s
}
