package challenge

import "github.com/wordwhizkids/wordwhiz/internal/llm"

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             req,
		"additionalProperties": false,
	}
}

var (
	digraphSchema = &llm.Schema{
		Name:        "digraph-challenge",
		Description: "A word with a missing consonant digraph",
		Definition: objectSchema(map[string]any{
			"word":    stringProp("The full word, lower case"),
			"missing": stringProp("The digraph removed from the word, e.g. sh"),
			"context": stringProp("A short sentence using the word"),
			"phoneme": stringProp("The sound the digraph makes, e.g. sh"),
		}, "word", "missing", "context", "phoneme"),
	}

	spellingSchema = &llm.Schema{
		Name:        "spelling-challenge",
		Description: "A spelling word with an example sentence",
		Definition: objectSchema(map[string]any{
			"word":    stringProp("The word to spell, lower case"),
			"context": stringProp("A short sentence using the word"),
		}, "word", "context"),
	}

	syllableSchema = &llm.Schema{
		Name:        "syllable-challenge",
		Description: "A word split into its syllables",
		Definition: objectSchema(map[string]any{
			"word": stringProp("The word, lower case"),
			"syllables": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "The syllables in order; joined they spell the word",
			},
			"count": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     6,
				"description": "Number of syllables",
			},
			"context": stringProp("A short sentence using the word"),
			"type":    stringProp("Syllable type, e.g. Closed, Open, Schwa, VCE"),
		}, "word", "syllables", "count", "context", "type"),
	}

	contractionSchema = &llm.Schema{
		Name:        "contraction-challenge",
		Description: "Two words and their contraction",
		Definition: objectSchema(map[string]any{
			"word":        stringProp("The two words, e.g. do not"),
			"contraction": stringProp("The contraction with an apostrophe, e.g. don't"),
			"context":     stringProp("A short sentence using the two words"),
		}, "word", "contraction", "context"),
	}

	dictationSchema = &llm.Schema{
		Name:        "dictation-challenge",
		Description: "A short sentence to write from dictation",
		Definition: objectSchema(map[string]any{
			"sentence": stringProp("The sentence to dictate"),
		}, "sentence"),
	}

	storySchema = &llm.Schema{
		Name:        "story-starter",
		Description: "A short story starter",
		Definition: objectSchema(map[string]any{
			"starter": stringProp("Two sentences that start a story"),
		}, "starter"),
	}

	curriculumSchema = &llm.Schema{
		Name:        "curriculum-activity",
		Description: "A quick classroom activity idea",
		Definition: objectSchema(map[string]any{
			"starter": stringProp("Activity description"),
			"context": stringProp("Learning standard"),
		}, "starter", "context"),
	}
)

// SchemaFor returns the structured-output schema for mode.
func SchemaFor(mode ModeID) *llm.Schema {
	switch mode {
	case ModeDigraph:
		return digraphSchema
	case ModeSpell, ModeUnitSpelling:
		return spellingSchema
	case ModeSyllable, ModeSchwa, ModeVCE:
		return syllableSchema
	case ModeContractions:
		return contractionSchema
	case ModeDictation:
		return dictationSchema
	case ModeStory:
		return storySchema
	case ModeTeacherCurriculum:
		return curriculumSchema
	}
	return nil
}
