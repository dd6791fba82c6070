package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RateLimit paces calls through a shared token bucket. One limiter should be shared by every
// operation against the same upstream.
func RateLimit(limiter *rate.Limiter, provider string, logger *slog.Logger) Policy {
	return func(op string, next Call) Call {
		if limiter == nil {
			return next
		}
		return func(ctx context.Context) (any, error) {
			if err := limiter.Wait(ctx); err != nil {
				logWithProvider(ctx, logger, slog.LevelWarn, provider, op, "rate-limited fetch canceled", "error", err)
				return nil, err
			}
			return next(ctx)
		}
	}
}

// NewLimiter builds a token bucket for rps with a burst of one second's worth of tokens.
// rps <= 0 yields an unlimited bucket.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
