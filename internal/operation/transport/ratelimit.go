package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// NewRateLimiter returns a token bucket limiter, or nil when rps is not
// positive so callers can pass the result straight to SetRateLimiter.
func NewRateLimiter(rps float64, burst int) RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &tokenBucket{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

type tokenBucket struct {
	limiter *rate.Limiter
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}
