package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

const (
	defaultRetryAttempts = 1
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// RetryConfig controls the retry policy. MaxAttempts <= 1 disables retries.
type RetryConfig struct {
	Provider    string
	MaxAttempts int
	Backoff     time.Duration
	Logger      *slog.Logger
}

type retrier struct {
	provider    string
	maxAttempts int
	logger      *slog.Logger
	backoffFn   backoffFunc

	mu  sync.Mutex
	rng *rand.Rand
}

func newRetrier(cfg RetryConfig, rng *rand.Rand) *retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultRetryAttempts
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retrier{
		provider:    cfg.Provider,
		maxAttempts: cfg.MaxAttempts,
		logger:      cfg.Logger,
		rng:         rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

// Retry re-issues failed calls with jittered linear backoff, honoring Retry-After on rate
// limits. Context cancellation is never retried.
func Retry(cfg RetryConfig) Policy {
	return newRetrier(cfg, nil).policy
}

func (r *retrier) policy(op string, next Call) Call {
	if r.maxAttempts <= 1 {
		return next
	}
	return func(ctx context.Context) (any, error) {
		var lastErr error
		for attempt := 1; attempt <= r.maxAttempts; attempt++ {
			out, err := next(ctx)
			if err == nil {
				return out, nil
			}
			lastErr = err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if attempt == r.maxAttempts {
				break
			}

			delay := r.computeDelay(err, attempt)
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.provider, op, "upstream retry",
				"attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "error", err)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.provider, op, "upstream fetch failed",
			"attempts", r.maxAttempts, "error", lastErr)
		return nil, lastErr
	}
}

// computeDelay uses Retry-After when the upstream sent one, otherwise a jittered delay in
// [base/2, base).
func (r *retrier) computeDelay(err error, attempt int) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.mu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(base-half) + 1))
	r.mu.Unlock()
	return half + jitter
}
