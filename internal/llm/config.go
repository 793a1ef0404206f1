package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config selects and configures the challenge provider. It is filled from
// the llm section of the wordwhiz config file.
type Config struct {
	// Provider is one of gemini, openai, anthropic, openrouter or mock.
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one challenge fetch, retries included.
	Timeout time.Duration `mapstructure:"timeout"`

	// RatePerMinute caps outgoing requests; 0 means unlimited.
	RatePerMinute int `mapstructure:"rate_per_minute"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig keeps retries short: a child is waiting on the answer and
// the offline bank is always there as a fallback.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     3 * time.Second,
			Multiplier:  2,
		},
		Timeout:       15 * time.Second,
		RatePerMinute: 30,
	}
}

// keyEnv lists the provider key variables in discovery order.
var keyEnv = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// key returns the API key field of provider, or nil for mock and unknown
// providers.
func (c *Config) key(provider string) *string {
	switch provider {
	case "gemini":
		return &c.Gemini.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// HasKey reports whether the selected provider can be used.
func (c Config) HasKey() bool {
	if c.Provider == "mock" {
		return true
	}
	k := c.key(c.Provider)
	return k != nil && *k != ""
}

// Discover falls back to the standard key environment variables when the
// selected provider has no key, switching to the first provider found.
// It reports whether a usable provider exists.
func (c Config) Discover() (Config, bool) {
	if c.HasKey() {
		return c, true
	}
	for _, ke := range keyEnv {
		if v := os.Getenv(ke.env); v != "" {
			c.Provider = ke.provider
			*c.key(ke.provider) = v
			return c, true
		}
	}
	return c, false
}

// Validate checks the provider name, its key and the timeout.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New("llm.timeout must not be negative")
	}
	if c.Provider == "mock" {
		return nil
	}
	k := c.key(c.Provider)
	if k == nil {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if *k == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
