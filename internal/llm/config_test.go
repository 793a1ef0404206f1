package llm

import (
	"math"
	"strings"
	"testing"
	"time"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini model = %q", cfg.Gemini.Model)
	}
}

func TestDiscover(t *testing.T) {
	t.Run("configured key wins", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg := DefaultConfig()
		cfg.Gemini.APIKey = "g-conf"
		got, ok := cfg.Discover()
		if !ok || got.Provider != "gemini" || got.Gemini.APIKey != "g-conf" {
			t.Fatalf("got %+v ok=%v", got, ok)
		}
	})

	t.Run("priority order", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "a-env")
		t.Setenv("OPENAI_API_KEY", "o-env")
		got, ok := DefaultConfig().Discover()
		if !ok || got.Provider != "openai" || got.OpenAI.APIKey != "o-env" {
			t.Fatalf("got provider %q ok=%v", got.Provider, ok)
		}
	})

	t.Run("none", func(t *testing.T) {
		clearKeyEnv(t)
		if _, ok := DefaultConfig().Discover(); ok {
			t.Fatal("expected no key to be found")
		}
	})

	t.Run("mock needs no key", func(t *testing.T) {
		clearKeyEnv(t)
		cfg := DefaultConfig()
		cfg.Provider = "mock"
		if _, ok := cfg.Discover(); !ok {
			t.Fatal("mock should always be usable")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"gemini ok", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, ""},
		{"gemini missing", Config{Provider: "gemini"}, "llm.gemini.api_key"},
		{"openrouter missing", Config{Provider: "openrouter"}, "llm.openrouter.api_key"},
		{"mock", Config{Provider: "mock"}, ""},
		{"unknown", Config{Provider: "x"}, "unknown LLM provider"},
		{"negative timeout", Config{Provider: "mock", Timeout: -time.Second}, "llm.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Errorf("cost = %v, want 2.8", got)
	}
	if LookupCost("google/gemini-2.5-flash") == nil {
		t.Error("expected OpenRouter ID to resolve without vendor prefix")
	}
	if LookupCost("unknown-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
