package grading

import (
	"strings"
	"testing"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
)

func TestNarration(t *testing.T) {
	tests := []struct {
		name string
		ch   challenge.Challenge
		want string
	}{
		{
			"digraph",
			challenge.New(challenge.ModeDigraph, challenge.Digraph{Word: "ship", Missing: "sh", Context: "The ship sails.", Phoneme: "sh"}, challenge.SourceOffline),
			"Okay Ana. Listen carefully. The word is ship. The ship sails. What sound starts the word ship?",
		},
		{
			"spelling",
			happy(),
			"Spell the word happy. I am very happy today.",
		},
		{
			"story",
			challenge.New(challenge.ModeStory, challenge.Narrative{Starter: "A frog winked."}, challenge.SourceOffline),
			"A frog winked. What happens next?",
		},
		{
			"curriculum",
			challenge.New(challenge.ModeTeacherCurriculum, challenge.Narrative{Starter: "Sort cards.", Context: "Phonics"}, challenge.SourceOffline),
			"Here is a curriculum idea: Sort cards.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Narration(tt.ch, "Ana"); got != tt.want {
				t.Errorf("Narration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplay_HidesAnswerUntilThreeMisses(t *testing.T) {
	ch := happy()

	pr := Display(ch, 2)
	if pr.Main != "Listen" {
		t.Errorf("Main = %q, want Listen", pr.Main)
	}
	if strings.Contains(strings.ToLower(pr.Context), "happy") {
		t.Errorf("context leaks the word: %q", pr.Context)
	}
	if pr.Reveal != "" {
		t.Errorf("revealed too early: %q", pr.Reveal)
	}

	pr = Display(ch, 3)
	if pr.Reveal != "Answer: happy" {
		t.Errorf("Reveal = %q", pr.Reveal)
	}
}

func TestDisplay_DigraphBlank(t *testing.T) {
	pr := Display(ship(), 0)
	if pr.Main != "__ip" {
		t.Errorf("Main = %q, want __ip", pr.Main)
	}
}

func TestDisplay_NarrativeNeverReveals(t *testing.T) {
	ch := challenge.New(challenge.ModeStory, challenge.Narrative{Starter: "Once"}, challenge.SourceOffline)
	if pr := Display(ch, 5); pr.Reveal != "" {
		t.Errorf("Reveal = %q", pr.Reveal)
	}
}

func TestStepPrompt(t *testing.T) {
	ch := rabbit()
	if got := StepPrompt(ch, SyllableProgress{}); got != "How many syllables?" {
		t.Errorf("step 0: %q", got)
	}
	if got := StepPrompt(ch, SyllableProgress{Step: 2}); got != "Spell syllable 2 of 2" {
		t.Errorf("step 2: %q", got)
	}
	if got := StepPrompt(happy(), SyllableProgress{}); got != "" {
		t.Errorf("non-syllable: %q", got)
	}
}

func TestBlank(t *testing.T) {
	if got := blank("Happy days are happy.", "happy"); got != "____ days are ____." {
		t.Errorf("blank = %q", got)
	}
}
