package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries failed calls with jittered exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p. A MaxAttempts below 2 disables retrying.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 2 {
		return p
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	sawInvalid := false

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			if werr := sleep(ctx, r.config.delay(attempt-1, err)); werr != nil {
				return nil, werr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !retryable(err, &sawInvalid) {
			return nil, err
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// retryable reports whether err is worth another attempt. Cancellation and
// truncation are final; an off-schema reply gets one more try.
func retryable(err error, sawInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *sawInvalid {
			return false
		}
		*sawInvalid = true
	}
	return true
}

// delay is the wait before retry n (0-based). A rate limit with a
// RetryAfter hint wins over the computed backoff.
func (c RetryConfig) delay(n int, cause error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(cause, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := c.InitialWait
	for range n {
		d = time.Duration(float64(d) * c.Multiplier)
		if d >= c.MaxWait {
			d = c.MaxWait
			break
		}
	}
	// ±20% jitter
	return time.Duration(float64(d) * (0.8 + 0.4*rand.Float64()))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
