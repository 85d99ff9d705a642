package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProvider is a decorator that spaces out requests with a token
// bucket so bursts of generation (roadmap plus further topics, quiz
// retries) stay under vendor quotas.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps p with a limiter of cfg.PerMinute requests per minute.
// A zero PerMinute returns p unchanged.
func WithRateLimit(p Provider, cfg RateConfig) Provider {
	if cfg.PerMinute <= 0 {
		return p
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	every := rate.Every(time.Minute / time.Duration(cfg.PerMinute))
	return &RateLimitProvider{inner: p, limiter: rate.NewLimiter(every, burst)}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}
