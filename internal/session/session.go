package session

import (
	"slices"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
)

// FetchFunc obtains a challenge. The resolver's Fetch satisfies it via a
// closure over its context.
type FetchFunc func(req challenge.Request) challenge.Challenge

// ResultEvent reports side effects of RecordResult for the UI.
type ResultEvent struct {
	Awarded  int
	Unlocked bool
}

// BeginFetch enters mode and marks a foreground fetch as in flight. It
// returns the token that ApplyChallenge expects, or false if a fetch is
// already running.
func BeginFetch(s State, mode challenge.ModeID) (State, int, bool) {
	if s.Loading {
		return s, 0, false
	}
	s.Mode = mode
	s.Attempts = 0
	s.Loading = true
	s.Notice = ""
	s.FetchToken++
	return s, s.FetchToken, true
}

// ApplyChallenge stores the result of the fetch identified by token.
// Results for a superseded fetch are ignored. The NoContent sentinel
// returns the learner to the menu with ConnectionFailed.
func ApplyChallenge(s State, token int, ch challenge.Challenge) State {
	if !s.Loading || token != s.FetchToken {
		return s
	}
	s.Loading = false

	if ch.IsNoContent() {
		s.Mode = ""
		s.Notice = ConnectionFailed
		return s
	}

	// Branching after going back drops the untaken future.
	s.History = append(slices.Clone(s.History[:s.Cursor+1]), ch)
	s.Cursor = len(s.History) - 1
	s.Attempts = 0
	s.Syllable = grading.SyllableProgress{}
	return s
}

// SelectMode enters mode and appends a freshly fetched challenge.
func SelectMode(s State, mode challenge.ModeID, fetch FetchFunc) State {
	s, token, ok := BeginFetch(s, mode)
	if !ok {
		return s
	}
	return ApplyChallenge(s, token, fetch(Request(s)))
}

// GoPrevious moves the cursor back one challenge without fetching.
func GoPrevious(s State) State {
	if s.Loading || s.Cursor <= 0 {
		return s
	}
	return moveTo(s, s.Cursor-1)
}

// GoNext moves forward through history, fetching a new challenge when the
// cursor is already at the tail.
func GoNext(s State, fetch FetchFunc) State {
	if s.Loading {
		return s
	}
	if AtTail(s) {
		if fetch == nil || s.Mode == "" {
			return s
		}
		return SelectMode(s, s.Mode, fetch)
	}
	return moveTo(s, s.Cursor+1)
}

func moveTo(s State, cursor int) State {
	s.Cursor = cursor
	s.Mode = s.History[cursor].Mode
	s.Syllable = grading.SyllableProgress{}
	return s
}

// Restart redisplays the current challenge from its first step. History
// and attempts are unchanged.
func Restart(s State) State {
	s.Syllable = grading.SyllableProgress{}
	return s
}

// GoHome discards the session. The fetch token keeps counting so a fetch
// still in flight cannot land in the next session.
func GoHome(s State) State {
	home := Empty()
	home.FetchToken = s.FetchToken
	return home
}

// GoMenu leaves the activity but keeps score and history.
func GoMenu(s State) State {
	s.Mode = ""
	s.Loading = false
	return s
}

// RecordResult applies a graded answer to score, streak and attempts.
func RecordResult(s State, correct bool) (State, ResultEvent) {
	var ev ResultEvent
	s.Answered++
	if !correct {
		s.Streak = 0
		s.Attempts++
		return s, ev
	}

	s.Correct++
	s.Score += grading.Award
	s.Streak++
	s.BestStreak = max(s.BestStreak, s.Streak)
	ev.Awarded = grading.Award

	if s.Streak >= UnlockStreak && !s.GamesUnlocked {
		s.GamesUnlocked = true
		s.UnlockPending = true
		ev.Unlocked = true
	}
	return s, ev
}

// ApplyGrade folds a grading result into the state. Partial syllable
// answers only move the walk forward.
func ApplyGrade(s State, r grading.Result) (State, ResultEvent) {
	s.Syllable = r.Next
	if r.Outcome == grading.Advance {
		return s, ResultEvent{}
	}
	return RecordResult(s, r.Correct)
}
