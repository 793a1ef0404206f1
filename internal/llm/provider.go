package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured reply per request. Every call made by
// the challenge generator is single-turn: a system prompt, one user prompt
// and a JSON schema for the payload of the requested mode.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to.
	ModelID() string
}

var (
	_ Provider = (*GeminiProvider)(nil)
	_ Provider = (*OpenAIProvider)(nil)
	_ Provider = (*AnthropicProvider)(nil)
	_ Provider = (*MockProvider)(nil)
	_ Provider = (*LoggingProvider)(nil)
	_ Provider = (*RetryProvider)(nil)
	_ Provider = (*RateLimitProvider)(nil)
)

// Request is one generation call.
type Request struct {
	// Purpose labels the call in telemetry, e.g. "challenge-spell".
	Purpose string

	System string
	Prompt string

	// Schema, when set, asks the provider for JSON matching it. The reply
	// is validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema. Name is kebab-case and doubles as the
// OpenAI schema name, e.g. "challenge-spelling".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a validated reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may
	// differ from ModelID when a router picks it.
	Model string
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// finish turns raw provider output into a Response, rejecting truncated
// or off-schema replies.
func finish(req Request, content json.RawMessage, usage Usage, model string, truncated bool) (*Response, error) {
	if truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model}, nil
}

// resolveModel maps a short alias like "flash" to a model ID. Unknown
// names are passed through.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
