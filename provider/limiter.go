package provider

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"jadoo/model"
)

// RateLimited paces outbound completions. It waits for a token and never
// rejects, so callers observe only added latency.
type RateLimited struct {
	model.Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps p when rps is positive and returns p unchanged otherwise.
func WithRateLimit(p model.Provider, rps float64, burst int) model.Provider {
	if rps <= 0 {
		return p
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		Provider: p,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Complete(ctx context.Context, req model.CompletionRequest) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for send slot: %w", err)
	}
	return r.Provider.Complete(ctx, req)
}
