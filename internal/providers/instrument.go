package providers

import (
	"context"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
)

// Instrument records every attempt, its latency, and any rate limiting under
// "provider.operation".
func Instrument(rec *metrics.Recorder, provider string) Policy {
	return func(op string, next Call) Call {
		if rec == nil {
			return next
		}
		key := metrics.Key(provider, op)
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			out, err := next(ctx)
			rec.RecordProviderAttempt(key, time.Since(start), err)
			if rl, ok := AsRateLimitError(err); ok {
				rec.RecordRateLimit(key, rl.RetryAfter)
			}
			return out, err
		}
	}
}
