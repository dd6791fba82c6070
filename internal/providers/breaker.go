package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
)

// BreakerConfig tunes the circuit breaker policy.
type BreakerConfig struct {
	Provider     string
	MinRequests  uint32
	FailureRatio float64
	OpenTimeout  time.Duration
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
}

// Breaker opens once a counting window holds at least MinRequests calls with FailureRatio or
// more of them failed, then fails fast with ErrProviderUnavailable until OpenTimeout passes.
// Context cancellation does not count as a failure.
func Breaker(cfg BreakerConfig) Policy {
	if cfg.MinRequests == 0 {
		cfg.MinRequests = 3
	}
	if cfg.FailureRatio <= 0 {
		cfg.FailureRatio = 0.6
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    cfg.Provider,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("upstream breaker state change",
					"provider", name, "from", from.String(), "to", to.String())
			}
			cfg.Metrics.RecordBreakerState(name, to.String())
		},
	})

	return func(op string, next Call) Call {
		return func(ctx context.Context) (any, error) {
			out, err := cb.Execute(func() (interface{}, error) {
				return next(ctx)
			})
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return nil, fmt.Errorf("%s %s: %w: %v", cfg.Provider, op, ErrProviderUnavailable, err)
			}
			return out, err
		}
	}
}
