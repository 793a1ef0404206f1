package challenge

import (
	"context"
	"fmt"

	"github.com/wordwhizkids/wordwhiz/internal/llm"
)

// Generator produces challenges from a network-backed source.
type Generator interface {
	// Generate returns a validated challenge for req or an error.
	Generate(ctx context.Context, req Request) (Challenge, error)
}

// GeneratorConfig controls the behavior of the LLMGenerator.
type GeneratorConfig struct {
	// Validators run in order; the first failure stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns the standard validator chain.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Validators: []Validator{
			&StructuralValidator{},
			&SingleWordValidator{},
			&LengthValidator{MaxWord: 24, MaxContext: 240},
		},
		MaxTokens:   512,
		Temperature: 0.9,
	}
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the provider for one challenge and decodes it as the
// payload variant of req.Mode.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (Challenge, error) {
	schema := SchemaFor(req.Mode)
	if schema == nil {
		return Challenge{}, fmt.Errorf("no schema for mode %q", req.Mode)
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		Purpose:     "challenge-" + string(req.Mode),
		System:      systemPrompt,
		Prompt:      buildPrompt(req),
		Schema:      schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return Challenge{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	payload, err := DecodePayload(req.Mode, resp.Content)
	if err != nil {
		return Challenge{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	c := New(req.Mode, payload, SourceOnline)
	for _, v := range g.config.Validators {
		if verr := v.Validate(c, req); verr != nil {
			return Challenge{}, verr
		}
	}
	return c, nil
}
