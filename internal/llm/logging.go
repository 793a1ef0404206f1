package llm

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/metrics"
	"github.com/wordwhizkids/wordwhiz/internal/store"
)

// LoggingProvider records each call as a telemetry event, a debug line
// and a latency sample. It sits below the retry layer, so every attempt
// is recorded separately.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	logger   *zap.Logger
}

// WithLogging wraps p. repo and logger may be nil.
func WithLogging(p Provider, name string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: name, repo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = "unknown"
	}

	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	metrics.LLMLatency.WithLabelValues(ev.Model, purpose, strconv.FormatBool(ev.Success)).Observe(elapsed.Seconds())
	l.logger.Debug("llm request",
		zap.String("provider", l.provider),
		zap.String("model", ev.Model),
		zap.String("purpose", purpose),
		zap.Duration("latency", elapsed),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
		zap.Error(err),
	)

	if l.repo != nil {
		if rerr := l.repo.AppendLLMRequest(ctx, ev); rerr != nil {
			l.logger.Warn("record llm request", zap.Error(rerr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

// transcript renders a request the way `wordwhiz llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		b.WriteString("[" + title + "]\n")
		b.WriteString(body)
		b.WriteString("\n\n")
	}
	if req.System != "" {
		section("system", req.System)
	}
	section("prompt", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
