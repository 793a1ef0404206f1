package challenge

import (
	"fmt"
	"strings"
)

// DefaultLanguage needs no language instruction in prompts.
const DefaultLanguage = "English"

const systemPrompt = `You are a friendly reading tutor creating phonics and spelling practice for 2nd graders.

Rules:
- Use short, common words a 7 year old can read.
- Context sentences must use the word exactly as spelled and stay under 15 words.
- Never include the answer in a field that is shown before the learner answers, except the context sentence.
- Keep content kind, safe and school appropriate.
- Return only the JSON object requested.`

// buildPrompt returns the mode-specific instruction for req.
func buildPrompt(req Request) string {
	name := req.Student
	if name == "" {
		name = "a student"
	}

	var b strings.Builder
	switch req.Mode {
	case ModeDigraph:
		fmt.Fprintf(&b, "Generate a digraph challenge for a 2nd grader named %s.\n", name)
		b.WriteString("Pick a word with 'sh', 'ch', 'th', or 'wh'.\n")
		b.WriteString(`Return JSON: { "word": "string", "missing": "string", "context": "sentence using the word", "phoneme": "the sound (e.g. sh)" }.`)
	case ModeSpell:
		fmt.Fprintf(&b, "Generate a spelling word for a 2nd grader named %s.\n", name)
		b.WriteString(`Return JSON: { "word": "string", "context": "sentence" }.`)
	case ModeUnitSpelling:
		fmt.Fprintf(&b, "Generate a spelling word from 2nd Grade Spelling Unit %d.\n", req.Unit)
		b.WriteString(`Return JSON: { "word": "string", "context": "sentence using the word" }.`)
	case ModeSyllable:
		fmt.Fprintf(&b, "Generate a two or three syllable word for a 2nd grader named %s to split into syllables.\n", name)
		b.WriteString("Use closed or open syllables.\n")
		b.WriteString(syllableShape)
	case ModeSchwa:
		fmt.Fprintf(&b, "Generate a word with a schwa sound for a 2nd grader named %s to split into syllables.\n", name)
		b.WriteString(`Set "type" to "Schwa".` + "\n")
		b.WriteString(syllableShape)
	case ModeVCE:
		fmt.Fprintf(&b, "Generate a vowel-consonant-e (magic e) word for a 2nd grader named %s.\n", name)
		b.WriteString(`Set "type" to "VCE".` + "\n")
		b.WriteString(syllableShape)
	case ModeContractions:
		fmt.Fprintf(&b, "Generate a contraction challenge for a 2nd grader named %s.\n", name)
		b.WriteString(`Return JSON: { "word": "the two words", "contraction": "the contraction with an apostrophe", "context": "sentence using the two words" }.`)
	case ModeDictation:
		fmt.Fprintf(&b, "Generate a short dictation sentence for a 2nd grader named %s.\n", name)
		b.WriteString(`Return JSON: { "sentence": "a sentence of 4 to 8 simple words ending with a period" }.`)
	case ModeStory:
		fmt.Fprintf(&b, "Write a 2-sentence story starter about %s finding something magical in a dark blue forest.\n", name)
		b.WriteString(`Return JSON: { "starter": "string" }.`)
	case ModeTeacherCurriculum:
		b.WriteString("You are a Maryland 2nd Grade Teacher Assistant. Suggest a quick 5-minute activity for the current math curriculum.\n")
		b.WriteString(`Return JSON: { "starter": "Activity Description", "context": "Learning Standard" }.`)
	}

	if req.Language != "" && !strings.EqualFold(req.Language, DefaultLanguage) {
		fmt.Fprintf(&b, "\nWrite all learner-facing text in %s.", req.Language)
	}
	return b.String()
}

const syllableShape = `Return JSON: { "word": "string", "syllables": ["each", "syllable"], "count": number of syllables, "context": "sentence using the word", "type": "syllable type" }.`
