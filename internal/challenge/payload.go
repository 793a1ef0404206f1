package challenge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoContent is reported when neither the generator nor the offline bank
// can supply a challenge for a mode.
var ErrNoContent = errors.New("no content available for mode")

// Payload is the mode-specific body of a challenge. The set of
// implementations is closed; see payloadFor.
type Payload interface {
	// Validate reports a missing or inconsistent required field.
	Validate() error
	payload()
}

// Digraph asks for the digraph missing from a word.
type Digraph struct {
	Word    string `json:"word"`
	Missing string `json:"missing"`
	Context string `json:"context"`
	Phoneme string `json:"phoneme"`
}

// Spelling asks the learner to spell a word.
type Spelling struct {
	Word    string `json:"word"`
	Context string `json:"context"`
}

// Syllable walks the learner through counting and spelling syllables.
type Syllable struct {
	Word      string   `json:"word"`
	Syllables []string `json:"syllables"`
	Count     int      `json:"count"`
	Context   string   `json:"context"`
	Type      string   `json:"type"`
}

// Contraction asks for the contracted form of two words.
type Contraction struct {
	Word        string `json:"word"`
	Contraction string `json:"contraction"`
	Context     string `json:"context"`
}

// Dictation asks the learner to type a spoken sentence.
type Dictation struct {
	Sentence string `json:"sentence"`
}

// Narrative is an ungraded story or activity prompt.
type Narrative struct {
	Starter string `json:"starter"`
	Context string `json:"context,omitempty"`
}

// NoContent is the sentinel payload returned when no source has data.
type NoContent struct{}

func (Digraph) payload()     {}
func (Spelling) payload()    {}
func (Syllable) payload()    {}
func (Contraction) payload() {}
func (Dictation) payload()   {}
func (Narrative) payload()   {}
func (NoContent) payload()   {}

func (p Digraph) Validate() error {
	if err := required("word", p.Word, "missing", p.Missing, "context", p.Context, "phoneme", p.Phoneme); err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(p.Word), strings.ToLower(p.Missing)) {
		return fmt.Errorf("missing fragment %q does not appear in %q", p.Missing, p.Word)
	}
	return nil
}

func (p Spelling) Validate() error {
	return required("word", p.Word, "context", p.Context)
}

func (p Syllable) Validate() error {
	if err := required("word", p.Word, "context", p.Context, "type", p.Type); err != nil {
		return err
	}
	if len(p.Syllables) == 0 {
		return errors.New("syllables is empty")
	}
	if p.Count != len(p.Syllables) {
		return fmt.Errorf("count %d does not match %d syllables", p.Count, len(p.Syllables))
	}
	for i, s := range p.Syllables {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("syllable %d is empty", i)
		}
	}
	if !strings.EqualFold(strings.Join(p.Syllables, ""), p.Word) {
		return fmt.Errorf("syllables %v do not spell %q", p.Syllables, p.Word)
	}
	return nil
}

func (p Contraction) Validate() error {
	if err := required("word", p.Word, "contraction", p.Contraction, "context", p.Context); err != nil {
		return err
	}
	if !strings.Contains(p.Contraction, "'") {
		return fmt.Errorf("contraction %q has no apostrophe", p.Contraction)
	}
	return nil
}

func (p Dictation) Validate() error {
	return required("sentence", p.Sentence)
}

func (p Narrative) Validate() error {
	return required("starter", p.Starter)
}

func (NoContent) Validate() error { return ErrNoContent }

// required takes name/value pairs and reports the first blank value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%s is empty", pairs[i])
		}
	}
	return nil
}

// payloadFor returns a pointer to the zero payload variant for mode.
func payloadFor(mode ModeID) (any, error) {
	switch mode {
	case ModeDigraph:
		return &Digraph{}, nil
	case ModeSpell, ModeUnitSpelling:
		return &Spelling{}, nil
	case ModeSyllable, ModeSchwa, ModeVCE:
		return &Syllable{}, nil
	case ModeContractions:
		return &Contraction{}, nil
	case ModeDictation:
		return &Dictation{}, nil
	case ModeStory, ModeTeacherCurriculum:
		return &Narrative{}, nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// DecodePayload parses raw JSON into the payload variant owned by mode.
func DecodePayload(mode ModeID, raw []byte) (Payload, error) {
	target, err := payloadFor(mode)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", mode, err)
	}
	switch p := target.(type) {
	case *Digraph:
		return *p, nil
	case *Spelling:
		return *p, nil
	case *Syllable:
		return *p, nil
	case *Contraction:
		return *p, nil
	case *Dictation:
		return *p, nil
	case *Narrative:
		return *p, nil
	}
	return nil, fmt.Errorf("unhandled payload %T", target)
}

// Matches reports whether p is the payload variant owned by mode.
func Matches(mode ModeID, p Payload) bool {
	switch p.(type) {
	case Digraph:
		return mode == ModeDigraph
	case Spelling:
		return mode == ModeSpell || mode == ModeUnitSpelling
	case Syllable:
		return mode.IsSyllableFamily()
	case Contraction:
		return mode == ModeContractions
	case Dictation:
		return mode == ModeDictation
	case Narrative:
		return mode.IsNarrative()
	}
	return false
}
