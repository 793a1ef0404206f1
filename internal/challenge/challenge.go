package challenge

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Source records where a challenge came from.
type Source string

const (
	SourceOnline   Source = "online"
	SourceOffline  Source = "offline"
	SourcePrefetch Source = "prefetch"
	SourceNone     Source = "none"
)

// Challenge is one instance of quiz content for a mode. Challenges are
// immutable once created; a re-fetch always produces a new value.
type Challenge struct {
	ID      string
	Mode    ModeID
	Payload Payload
	Source  Source
}

// New builds a challenge with a fresh ID.
func New(mode ModeID, p Payload, src Source) Challenge {
	return Challenge{
		ID:      uuid.NewString(),
		Mode:    mode,
		Payload: p,
		Source:  src,
	}
}

// NoContentChallenge returns the sentinel challenge for mode.
func NoContentChallenge(mode ModeID) Challenge {
	return Challenge{Mode: mode, Payload: NoContent{}, Source: SourceNone}
}

// IsNoContent reports whether c is the "no content" sentinel.
func (c Challenge) IsNoContent() bool {
	_, ok := c.Payload.(NoContent)
	return ok || c.Payload == nil
}

// Validate checks that the payload variant belongs to the mode and that
// every field the mode needs is populated.
func (c Challenge) Validate() error {
	if c.IsNoContent() {
		return ErrNoContent
	}
	if !Matches(c.Mode, c.Payload) {
		return fmt.Errorf("payload %T does not belong to mode %q", c.Payload, c.Mode)
	}
	return c.Payload.Validate()
}

// Context returns the hint sentence for the challenge, or the starter for
// narrative modes.
func (c Challenge) Context() string {
	switch p := c.Payload.(type) {
	case Digraph:
		return p.Context
	case Spelling:
		return p.Context
	case Syllable:
		return p.Context
	case Contraction:
		return p.Context
	case Dictation:
		return p.Sentence
	case Narrative:
		return p.Starter
	}
	return ""
}

// Answer returns the expected answer text shown when the answer is revealed.
func (c Challenge) Answer() string {
	switch p := c.Payload.(type) {
	case Digraph:
		return p.Word
	case Spelling:
		return p.Word
	case Syllable:
		return strings.Join(p.Syllables, "-")
	case Contraction:
		return p.Contraction
	case Dictation:
		return p.Sentence
	}
	return ""
}
