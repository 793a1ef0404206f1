package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/store"
)

// NewProvider builds the configured provider and stacks the decorators:
// rate limit, then retry, then logging, then the SDK client. repo may be
// nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return decorate(base, cfg, repo, logger), nil
}

func decorate(base Provider, cfg Config, repo store.EventRepo, logger *zap.Logger) Provider {
	p := WithLogging(base, cfg.Provider, repo, logger)
	p = WithRetry(p, cfg.Retry)
	return WithRateLimit(p, cfg.RatePerMinute, 2)
}
