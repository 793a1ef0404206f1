package grading

import (
	"fmt"
	"strings"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/metrics"
)

// RevealAfter is the number of misses after which the answer is shown.
const RevealAfter = 3

// Narration returns the line spoken when ch is first shown.
func Narration(ch challenge.Challenge, student string) string {
	switch p := ch.Payload.(type) {
	case challenge.Digraph:
		return fmt.Sprintf("Okay %s. Listen carefully. The word is %s. %s. What sound starts the word %s?",
			student, p.Word, strings.TrimSuffix(p.Context, "."), p.Word)
	case challenge.Spelling:
		return fmt.Sprintf("Spell the word %s. %s", p.Word, p.Context)
	case challenge.Syllable:
		return fmt.Sprintf("Listen to the word %s. %s How many syllables do you hear?", p.Word, p.Context)
	case challenge.Contraction:
		return fmt.Sprintf("What is the contraction for %s? %s", p.Word, p.Context)
	case challenge.Dictation:
		return fmt.Sprintf("Listen and type this sentence. %s", p.Sentence)
	case challenge.Narrative:
		if ch.Mode == challenge.ModeTeacherCurriculum {
			return fmt.Sprintf("Here is a curriculum idea: %s", p.Starter)
		}
		return p.Starter + " What happens next?"
	}
	return ""
}

// Hint returns the line spoken when the learner asks for a hint.
func Hint(ch challenge.Challenge) string {
	switch p := ch.Payload.(type) {
	case challenge.Spelling:
		return fmt.Sprintf("%s. %s", p.Word, p.Context)
	case challenge.Syllable:
		return fmt.Sprintf("%s. %s", strings.Join(p.Syllables, ". "), p.Context)
	}
	return ch.Context()
}

// Prompt is what the activity screen shows for a challenge.
type Prompt struct {
	Main    string
	Context string
	Reveal  string
}

// Display returns the on-screen prompt for ch. The answer is revealed
// once attempts reaches RevealAfter.
func Display(ch challenge.Challenge, attempts int) Prompt {
	var pr Prompt
	switch p := ch.Payload.(type) {
	case challenge.Digraph:
		pr.Main = strings.Replace(p.Word, p.Missing, strings.Repeat("_", len(p.Missing)), 1)
		pr.Context = blank(p.Context, p.Word)
	case challenge.Spelling:
		pr.Main = "Listen"
		pr.Context = blank(p.Context, p.Word)
	case challenge.Syllable:
		pr.Main = p.Word
		pr.Context = p.Context
	case challenge.Contraction:
		pr.Main = p.Word
		pr.Context = p.Context
	case challenge.Dictation:
		pr.Main = "Listen and type the sentence"
	case challenge.Narrative:
		pr.Main = p.Starter
		pr.Context = p.Context
	}
	if attempts >= RevealAfter {
		if a := ch.Answer(); a != "" {
			pr.Reveal = "Answer: " + a
		}
	}
	return pr
}

// StepPrompt describes what the syllable walk is waiting for.
func StepPrompt(ch challenge.Challenge, progress SyllableProgress) string {
	p, ok := ch.Payload.(challenge.Syllable)
	if !ok {
		return ""
	}
	if progress.Step <= 0 || progress.Step > len(p.Syllables) {
		return "How many syllables?"
	}
	return fmt.Sprintf("Spell syllable %d of %d", progress.Step, len(p.Syllables))
}

// blank hides word inside sentence, ignoring case.
func blank(sentence, word string) string {
	if word == "" {
		return sentence
	}
	lower := strings.ToLower(sentence)
	w := strings.ToLower(word)
	var b strings.Builder
	for {
		i := strings.Index(lower, w)
		if i < 0 {
			b.WriteString(sentence)
			return b.String()
		}
		b.WriteString(sentence[:i])
		b.WriteString("____")
		sentence = sentence[i+len(w):]
		lower = lower[i+len(w):]
	}
}

// Record counts r in the grading metrics.
func Record(mode challenge.ModeID, r Result) {
	metrics.GradeOutcomes.WithLabelValues(string(mode), string(r.Outcome)).Inc()
}
