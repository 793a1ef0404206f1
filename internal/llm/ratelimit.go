package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that spaces out requests with a token
// bucket. Callers block in Generate until a token is available or ctx ends.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider so at most perMinute requests start per
// minute, with bursts up to burst. A non-positive perMinute returns p
// unchanged.
func WithRateLimit(p Provider, perMinute, burst int) Provider {
	if perMinute <= 0 {
		return p
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
	}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &ErrRateLimit{Err: err}
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
