package grading

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
)

// Outcome is the result class of a single grading call.
type Outcome string

const (
	Correct   Outcome = "correct"
	Incorrect Outcome = "incorrect"
	// Advance is a correct partial answer in the syllable walk.
	Advance Outcome = "advance"
)

// SilenceMarker is what the transcriber returns when nothing was heard.
const SilenceMarker = "SILENCE"

// Award is the number of cuudoos for a correct answer.
const Award = 10

const (
	successFeedback = "Excellent work! +10 Cuudoos!"
	silenceFeedback = "I didn't hear anything. Try pressing the button and speaking clearly!"
)

// SilenceSpeech is spoken when the answer was blank or inaudible.
const SilenceSpeech = "I didn't hear you. Please try again."

// SyllableProgress tracks the syllable walk. Step 0 awaits the syllable
// count; step k awaits syllable k-1.
type SyllableProgress struct {
	Step int
}

// Result is the outcome of grading one answer.
type Result struct {
	Outcome  Outcome
	Correct  bool
	Feedback string
	Speech   string
	Next     SyllableProgress
}

// WithStudent fills in the spoken praise for a correct result.
func (r Result) WithStudent(name string) Result {
	if r.Outcome == Correct {
		if name == "" {
			r.Speech = "Great job! That is correct."
		} else {
			r.Speech = fmt.Sprintf("Great job %s! That is correct.", name)
		}
	}
	return r
}

// Normalize lower-cases s, strips periods and trims surrounding space.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), ".", ""))
}

// Grade evaluates raw against ch. It has no side effects.
func Grade(mode challenge.ModeID, ch challenge.Challenge, progress SyllableProgress, raw string) Result {
	if strings.TrimSpace(raw) == "" || raw == SilenceMarker {
		return Result{
			Outcome:  Incorrect,
			Feedback: silenceFeedback,
			Speech:   SilenceSpeech,
			Next:     progress,
		}
	}

	in := Normalize(raw)

	switch p := ch.Payload.(type) {
	case challenge.Digraph:
		if mode == challenge.ModeDigraph {
			return gradeDigraph(p, in, progress)
		}
	case challenge.Spelling:
		if mode == challenge.ModeSpell || mode == challenge.ModeUnitSpelling {
			return gradeSpelling(p, in, progress)
		}
	case challenge.Syllable:
		if mode.IsSyllableFamily() {
			return gradeSyllable(p, in, progress)
		}
	case challenge.Contraction:
		if mode == challenge.ModeContractions {
			return gradeContraction(p, in, progress)
		}
	case challenge.Dictation:
		if mode == challenge.ModeDictation {
			return gradeDictation(p, in, progress)
		}
	}

	// Narrative and unrecognized modes accept any answer.
	return correct(progress)
}

func correct(next SyllableProgress) Result {
	return Result{Outcome: Correct, Correct: true, Feedback: successFeedback, Next: next}
}

func incorrect(feedback string, next SyllableProgress) Result {
	return Result{Outcome: Incorrect, Feedback: feedback, Speech: feedback, Next: next}
}

func advance(feedback string, next SyllableProgress) Result {
	return Result{Outcome: Advance, Feedback: feedback, Speech: feedback, Next: next}
}

func gradeDigraph(p challenge.Digraph, in string, progress SyllableProgress) Result {
	if strings.Contains(in, Normalize(p.Missing)) || strings.Contains(in, Normalize(p.Word)) {
		return correct(progress)
	}
	return incorrect(fmt.Sprintf("Not quite. The word was %q. We are looking for the %q sound.", p.Word, p.Phoneme), progress)
}

func gradeSpelling(p challenge.Spelling, in string, progress SyllableProgress) Result {
	target := Normalize(p.Word)
	letters := strings.Join(strings.Fields(in), "")
	if letters == target || strings.Contains(in, target) {
		return correct(progress)
	}
	first := ""
	if target != "" {
		first = strings.ToUpper(target[:1])
	}
	return incorrect(fmt.Sprintf("Good try. The word was %q. It starts with the letter %s.", p.Word, first), progress)
}

func gradeSyllable(p challenge.Syllable, in string, progress SyllableProgress) Result {
	n := len(p.Syllables)
	if progress.Step <= 0 {
		count, ok := parseCount(in)
		if !ok || count != p.Count {
			return incorrect(fmt.Sprintf("Not quite. Listen to %q again. How many syllables do you hear?", p.Word), SyllableProgress{Step: 0})
		}
		return advance(fmt.Sprintf("Yes! %q has %d %s. Now spell syllable 1.", p.Word, p.Count, plural(p.Count)), SyllableProgress{Step: 1})
	}

	idx := progress.Step - 1
	if idx >= n {
		// Walk already finished; treat as a fresh count.
		return gradeSyllable(p, in, SyllableProgress{})
	}
	if in != Normalize(p.Syllables[idx]) {
		return incorrect(fmt.Sprintf("Try that syllable again. Spell syllable %d of %q.", idx+1, p.Word), progress)
	}
	if idx == n-1 {
		return correct(SyllableProgress{})
	}
	return advance(fmt.Sprintf("Good! Now spell syllable %d.", idx+2), SyllableProgress{Step: progress.Step + 1})
}

func gradeContraction(p challenge.Contraction, in string, progress SyllableProgress) Result {
	if strings.Contains(in, Normalize(p.Contraction)) {
		return correct(progress)
	}
	return incorrect(fmt.Sprintf("Almost! %q becomes %q.", p.Word, p.Contraction), progress)
}

func gradeDictation(p challenge.Dictation, in string, progress SyllableProgress) Result {
	if in == Normalize(p.Sentence) {
		return correct(progress)
	}
	return incorrect(fmt.Sprintf("Good try. The sentence was %q.", p.Sentence), progress)
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
}

// parseCount reads a syllable count typed as digits or spoken as a word.
func parseCount(in string) (int, bool) {
	if n, err := strconv.Atoi(in); err == nil {
		return n, true
	}
	for _, f := range strings.Fields(in) {
		if n, ok := numberWords[f]; ok {
			return n, true
		}
		if n, err := strconv.Atoi(f); err == nil {
			return n, true
		}
	}
	return 0, false
}

func plural(n int) string {
	if n == 1 {
		return "syllable"
	}
	return "syllables"
}
