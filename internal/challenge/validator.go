package challenge

import (
	"fmt"
	"strings"
)

// Validator checks a generated challenge before it is served.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil if the challenge passes the check.
	Validate(c Challenge, req Request) *ValidationError
}

// ValidationError describes why a challenge failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that the payload belongs to the mode and every
// required field is present.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Challenge, _ Request) *ValidationError {
	if err := c.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error(), Retryable: true}
	}
	return nil
}

// LengthValidator rejects overlong text that would not fit on screen.
type LengthValidator struct {
	MaxWord    int
	MaxContext int
}

func (v *LengthValidator) Name() string { return "length" }

func (v *LengthValidator) Validate(c Challenge, _ Request) *ValidationError {
	if ctx := c.Context(); v.MaxContext > 0 && len(ctx) > v.MaxContext {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("context exceeds %d characters", v.MaxContext),
			Retryable: true,
		}
	}
	var word string
	switch p := c.Payload.(type) {
	case Digraph:
		word = p.Word
	case Spelling:
		word = p.Word
	case Syllable:
		word = p.Word
	}
	if v.MaxWord > 0 && len(word) > v.MaxWord {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("word exceeds %d characters", v.MaxWord),
			Retryable: true,
		}
	}
	return nil
}

// SingleWordValidator requires spelling and syllable words to be one word.
type SingleWordValidator struct{}

func (v *SingleWordValidator) Name() string { return "single-word" }

func (v *SingleWordValidator) Validate(c Challenge, _ Request) *ValidationError {
	var word string
	switch p := c.Payload.(type) {
	case Digraph:
		word = p.Word
	case Spelling:
		word = p.Word
	case Syllable:
		word = p.Word
	default:
		return nil
	}
	if strings.ContainsAny(strings.TrimSpace(word), " \t") {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%q is not a single word", word),
			Retryable: true,
		}
	}
	return nil
}
