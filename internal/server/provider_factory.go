package server

import (
	"log/slog"

	"github.com/preston-bernstein/cfb-data-service/internal/cache"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
)

// providerFactory assembles the upstreams with the shared policy chain.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	bodies  cache.BodyCache
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder, bodies cache.BodyCache) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, bodies: bodies}
}

// build guards base (or the configured provider when base is nil) and picks the weather
// source to go with it.
func (f providerFactory) build(cfg config.Config, base providers.DataProvider) (providers.DataProvider, providers.WeatherProvider) {
	if base == nil {
		base = selectProvider(cfg, f.bodies, f.logger)
	}
	wx := selectWeather(cfg, base, f.bodies, f.logger)
	return providers.Guard(base, f.policies(cfg)...), providers.GuardWeather(wx, f.weatherPolicies(cfg)...)
}

// policies run outermost first: retries wrap the breaker, and every attempt waits on the
// shared limiter before it is measured.
func (f providerFactory) policies(cfg config.Config) []providers.Policy {
	name := providerName(cfg)
	out := []providers.Policy{
		providers.Retry(providers.RetryConfig{
			Provider:    name,
			MaxAttempts: cfg.CFBD.MaxAttempts,
			Logger:      f.logger,
		}),
	}
	if cfg.CFBD.BreakerEnabled {
		out = append(out, providers.Breaker(providers.BreakerConfig{
			Provider: name,
			Logger:   f.logger,
			Metrics:  f.metrics,
		}))
	}
	return append(out,
		providers.RateLimit(providers.NewLimiter(cfg.CFBD.RequestsPerSecond), name, f.logger),
		providers.Instrument(f.metrics, name),
	)
}

func (f providerFactory) weatherPolicies(cfg config.Config) []providers.Policy {
	return []providers.Policy{
		providers.RateLimit(providers.NewLimiter(cfg.Weather.RequestsPerSecond), weatherProviderName, f.logger),
		providers.Instrument(f.metrics, weatherProviderName),
	}
}
