package session

import (
	"testing"
	"time"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
)

// seqFetch returns spelling challenges named A, B, C, ... and counts calls.
type seqFetch struct {
	calls int
}

func (f *seqFetch) fetch(req challenge.Request) challenge.Challenge {
	name := string(rune('A' + f.calls))
	f.calls++
	return challenge.New(req.Mode, challenge.Spelling{Word: name, Context: "Spell " + name + "."}, challenge.SourceOffline)
}

func word(t *testing.T, s State) string {
	t.Helper()
	c, ok := Current(s)
	if !ok {
		t.Fatal("no current challenge")
	}
	return c.Payload.(challenge.Spelling).Word
}

func TestNew(t *testing.T) {
	s := New("Ana", 20, true)
	if s.SessionID == "" {
		t.Error("expected a session ID")
	}
	if s.Remaining != 20*time.Minute || s.Duration != ShortSession {
		t.Errorf("unexpected timer: %v / %v", s.Remaining, s.Duration)
	}
	if s.Cursor != -1 || len(s.History) != 0 {
		t.Errorf("expected empty history, cursor %d", s.Cursor)
	}
	if _, ok := Current(s); ok {
		t.Error("expected no current challenge")
	}
}

func TestHistoryNavigation(t *testing.T) {
	f := &seqFetch{}
	s := New("Ana", 20, false)

	for range 3 {
		s = SelectMode(s, challenge.ModeSpell, f.fetch)
	}
	if s.Cursor != 2 || word(t, s) != "C" {
		t.Fatalf("cursor %d word %s, want 2 C", s.Cursor, word(t, s))
	}

	s = GoPrevious(s)
	s = GoPrevious(s)
	if s.Cursor != 0 || word(t, s) != "A" {
		t.Fatalf("cursor %d word %s, want 0 A", s.Cursor, word(t, s))
	}

	// Already at the head: no-op.
	s = GoPrevious(s)
	if s.Cursor != 0 {
		t.Fatalf("cursor %d, want 0", s.Cursor)
	}

	s = GoNext(s, f.fetch)
	if s.Cursor != 1 || word(t, s) != "B" {
		t.Fatalf("cursor %d word %s, want 1 B", s.Cursor, word(t, s))
	}
	if f.calls != 3 {
		t.Fatalf("navigation fetched: %d calls", f.calls)
	}

	s = GoNext(s, f.fetch)
	s = GoNext(s, f.fetch)
	if s.Cursor != 3 || word(t, s) != "D" {
		t.Fatalf("cursor %d word %s, want 3 D", s.Cursor, word(t, s))
	}
	if f.calls != 4 || len(s.History) != 4 {
		t.Errorf("calls %d history %d, want 4 and 4", f.calls, len(s.History))
	}
}

func TestSelectModeTruncatesForwardHistory(t *testing.T) {
	f := &seqFetch{}
	s := New("Ana", 20, false)
	for range 3 {
		s = SelectMode(s, challenge.ModeSpell, f.fetch)
	}
	s = GoPrevious(s)
	s = GoPrevious(s)

	s = SelectMode(s, challenge.ModeSpell, f.fetch)
	if len(s.History) != 2 || s.Cursor != 1 {
		t.Fatalf("history %d cursor %d, want 2 and 1", len(s.History), s.Cursor)
	}
	if word(t, s) != "D" {
		t.Errorf("word %s, want D", word(t, s))
	}
}

func TestReducersDoNotMutateInput(t *testing.T) {
	f := &seqFetch{}
	s := New("Ana", 20, false)
	for range 3 {
		s = SelectMode(s, challenge.ModeSpell, f.fetch)
	}
	back := GoPrevious(GoPrevious(s))
	_ = SelectMode(back, challenge.ModeSpell, f.fetch)

	if len(s.History) != 3 || word(t, s) != "C" {
		t.Errorf("original state changed: history %d word %s", len(s.History), word(t, s))
	}
	if got := s.History[1].Payload.(challenge.Spelling).Word; got != "B" {
		t.Errorf("original history entry changed to %s", got)
	}
}

func TestStreakUnlockFiresOnce(t *testing.T) {
	s := New("Ana", 20, false)
	var unlocks int
	for i := range 4 {
		var ev ResultEvent
		s, ev = RecordResult(s, true)
		if ev.Awarded != grading.Award {
			t.Errorf("call %d: awarded %d", i, ev.Awarded)
		}
		if ev.Unlocked {
			unlocks++
			if i != 2 {
				t.Errorf("unlock on call %d, want call 2", i)
			}
		}
	}
	if unlocks != 1 {
		t.Errorf("unlocked %d times, want 1", unlocks)
	}
	if !s.GamesUnlocked || s.Score != 40 || s.Streak != 4 {
		t.Errorf("unexpected state: %+v", s)
	}

	// Losing and rebuilding the streak does not unlock again.
	s, _ = RecordResult(s, false)
	for range 3 {
		var ev ResultEvent
		s, ev = RecordResult(s, true)
		if ev.Unlocked {
			t.Error("unlock fired a second time")
		}
	}
	if s.BestStreak != 4 {
		t.Errorf("best streak %d, want 4", s.BestStreak)
	}
}

func TestIncorrectResetsStreakAndCountsAttempts(t *testing.T) {
	s := New("Ana", 20, false)
	s, _ = RecordResult(s, true)
	s, _ = RecordResult(s, false)
	s, _ = RecordResult(s, false)
	if s.Streak != 0 || s.Attempts != 2 || s.Score != 10 {
		t.Errorf("streak %d attempts %d score %d", s.Streak, s.Attempts, s.Score)
	}
}

func TestAttemptsResetRules(t *testing.T) {
	f := &seqFetch{}
	s := New("Ana", 20, false)
	s = SelectMode(s, challenge.ModeSpell, f.fetch)
	s = SelectMode(s, challenge.ModeSpell, f.fetch)
	for range 3 {
		s, _ = RecordResult(s, false)
	}
	if !RevealAnswer(s) {
		t.Fatal("expected answer to be revealed after 3 misses")
	}

	if s = Restart(s); s.Attempts != 3 {
		t.Errorf("restart reset attempts to %d", s.Attempts)
	}
	if s = GoPrevious(s); s.Attempts != 3 {
		t.Errorf("navigation reset attempts to %d", s.Attempts)
	}
	if s = GoNext(s, f.fetch); s.Attempts != 3 {
		t.Errorf("navigation reset attempts to %d", s.Attempts)
	}
	if s = GoNext(s, f.fetch); s.Attempts != 0 {
		t.Errorf("new challenge kept attempts %d", s.Attempts)
	}

	s, _ = RecordResult(s, false)
	s, _, _ = BeginFetch(s, challenge.ModeDictation)
	if s.Attempts != 0 {
		t.Errorf("mode change kept attempts %d", s.Attempts)
	}
}

func TestSyllableProgressResetsOnNewChallenge(t *testing.T) {
	rabbit := challenge.New(challenge.ModeSyllable, challenge.Syllable{
		Word: "rabbit", Syllables: []string{"rab", "bit"}, Count: 2, Context: "x", Type: "Closed",
	}, challenge.SourceOffline)
	fetch := func(challenge.Request) challenge.Challenge { return rabbit }

	s := SelectMode(New("Ana", 20, false), challenge.ModeSyllable, fetch)
	ch, _ := Current(s)

	r := grading.Grade(s.Mode, ch, s.Syllable, "2")
	s, ev := ApplyGrade(s, r)
	if s.Syllable.Step != 1 || ev.Awarded != 0 || s.Score != 0 {
		t.Fatalf("after count: step %d awarded %d", s.Syllable.Step, ev.Awarded)
	}

	s = SelectMode(s, challenge.ModeSyllable, fetch)
	if s.Syllable.Step != 0 {
		t.Errorf("step %d after new challenge, want 0", s.Syllable.Step)
	}
}

func TestApplyGrade_CompleteWalkScores(t *testing.T) {
	rabbit := challenge.New(challenge.ModeSyllable, challenge.Syllable{
		Word: "rabbit", Syllables: []string{"rab", "bit"}, Count: 2, Context: "x", Type: "Closed",
	}, challenge.SourceOffline)
	s := SelectMode(New("Ana", 20, false), challenge.ModeSyllable, func(challenge.Request) challenge.Challenge { return rabbit })

	for _, in := range []string{"2", "rab", "bit"} {
		ch, _ := Current(s)
		s, _ = ApplyGrade(s, grading.Grade(s.Mode, ch, s.Syllable, in))
	}
	if s.Score != grading.Award || s.Streak != 1 || s.Answered != 1 {
		t.Errorf("score %d streak %d answered %d", s.Score, s.Streak, s.Answered)
	}
}

func TestNoContentReturnsToMenu(t *testing.T) {
	f := &seqFetch{}
	s := SelectMode(New("Ana", 20, false), challenge.ModeSpell, f.fetch)

	s = SelectMode(s, challenge.ModeDictation, func(req challenge.Request) challenge.Challenge {
		return challenge.NoContentChallenge(req.Mode)
	})
	if s.Mode != "" {
		t.Errorf("mode %q, want menu", s.Mode)
	}
	if s.Notice != ConnectionFailed {
		t.Errorf("notice %q", s.Notice)
	}
	if len(s.History) != 1 {
		t.Errorf("sentinel appended to history: %d entries", len(s.History))
	}
}

func TestStaleFetchIgnored(t *testing.T) {
	s := New("Ana", 20, false)
	s, token, ok := BeginFetch(s, challenge.ModeSpell)
	if !ok {
		t.Fatal("expected fetch to start")
	}
	if _, _, again := BeginFetch(s, challenge.ModeSpell); again {
		t.Error("second foreground fetch should be refused")
	}

	home := GoHome(s)
	late := challenge.New(challenge.ModeSpell, challenge.Spelling{Word: "late", Context: "x"}, challenge.SourceOnline)
	if got := ApplyChallenge(home, token, late); len(got.History) != 0 {
		t.Error("fetch from the previous session landed after GoHome")
	}

	next := New("Ana", 20, false)
	next.FetchToken = home.FetchToken
	next, token2, _ := BeginFetch(next, challenge.ModeSpell)
	if token2 == token {
		t.Fatal("token reused across sessions")
	}
	if got := ApplyChallenge(next, token, late); len(got.History) != 0 {
		t.Error("stale token accepted")
	}
}

func TestGoHomeResets(t *testing.T) {
	f := &seqFetch{}
	s := SelectMode(New("Ana", 20, false), challenge.ModeSpell, f.fetch)
	s, _ = RecordResult(s, true)

	s = GoHome(s)
	if s.Student != "" || s.Score != 0 || len(s.History) != 0 || s.Cursor != -1 || s.Mode != "" {
		t.Errorf("state not reset: %+v", s)
	}
}

func TestTickAndExpire(t *testing.T) {
	s := New("Ana", 20, false)
	s = Tick(s, 19*time.Minute)
	if Expired(s) {
		t.Fatal("expired early")
	}
	s = Tick(s, 2*time.Minute)
	if !Expired(s) || s.Remaining != 0 {
		t.Errorf("remaining %v expired %v", s.Remaining, Expired(s))
	}
	if Expired(Empty()) {
		t.Error("empty state must not be expired")
	}
}

func TestSetUnitClamps(t *testing.T) {
	s := New("Ana", 20, false)
	for _, tt := range []struct{ in, want int }{{0, 1}, {4, 4}, {99, challenge.MaxUnit}} {
		if got := SetUnit(s, tt.in).Unit; got != tt.want {
			t.Errorf("SetUnit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCycleLanguage(t *testing.T) {
	s := New("Ana", 20, false)
	seen := map[string]bool{}
	for range Languages {
		seen[s.Language] = true
		s = CycleLanguage(s)
	}
	if s.Language != challenge.DefaultLanguage || len(seen) != len(Languages) {
		t.Errorf("cycle ended on %q after visiting %d", s.Language, len(seen))
	}
}

func TestRequestCarriesSelections(t *testing.T) {
	s := SetUnit(New("Ana", 30, true), 6)
	s = SetLanguage(s, "Spanish")
	s, _, _ = BeginFetch(s, challenge.ModeUnitSpelling)
	req := Request(s)
	want := challenge.Request{Mode: challenge.ModeUnitSpelling, Unit: 6, Language: "Spanish", Student: "Ana", Online: true}
	if req != want {
		t.Errorf("Request = %+v, want %+v", req, want)
	}
}

func TestBuildSummary(t *testing.T) {
	f := &seqFetch{}
	s := New("Ana", 20, false)
	s = SelectMode(s, challenge.ModeSpell, f.fetch)
	s, _ = RecordResult(s, true)
	s = SelectMode(s, challenge.ModeSpell, f.fetch)
	s, _ = RecordResult(s, false)
	s = Tick(s, 5*time.Minute)

	sum := BuildSummary(s)
	if sum.Seen != 2 || sum.Answered != 2 || sum.Correct != 1 || sum.Score != 10 {
		t.Errorf("unexpected summary: %+v", sum)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("accuracy %v", sum.Accuracy)
	}
	if sum.Elapsed != 5*time.Minute {
		t.Errorf("elapsed %v", sum.Elapsed)
	}
}
