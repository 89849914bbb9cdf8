package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled limits the call rate of a wrapped provider
type Throttled struct {
	Provider
	limiter *rate.Limiter
}

// NewThrottled wraps p with a token bucket of rps and burst 1
func NewThrottled(p Provider, rps float64) *Throttled {
	return &Throttled{
		Provider: p,
		limiter:  rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Complete waits for a token, then delegates
func (t *Throttled) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limit wait: %w", t.Name(), err)
	}
	return t.Provider.Complete(ctx, req)
}
