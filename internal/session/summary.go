package session

import "time"

// Summary holds the data displayed when the session ends.
type Summary struct {
	Student    string
	Duration   time.Duration
	Elapsed    time.Duration
	Score      int
	BestStreak int
	Seen       int
	Answered   int
	Correct    int
	Accuracy   float64
}

// BuildSummary creates a Summary from the current state.
func BuildSummary(s State) Summary {
	var accuracy float64
	if s.Answered > 0 {
		accuracy = float64(s.Correct) / float64(s.Answered)
	}
	return Summary{
		Student:    s.Student,
		Duration:   s.Duration,
		Elapsed:    s.Duration - s.Remaining,
		Score:      s.Score,
		BestStreak: s.BestStreak,
		Seen:       len(s.History),
		Answered:   s.Answered,
		Correct:    s.Correct,
		Accuracy:   accuracy,
	}
}
