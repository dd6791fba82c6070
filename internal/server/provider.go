package server

import (
	"log/slog"

	"github.com/preston-bernstein/cfb-data-service/internal/cache"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/cfbd"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/fixture"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/openweather"
)

func selectProvider(cfg config.Config, bodies cache.BodyCache, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderCFBD, "":
		return cfbd.NewClient(cfbd.Config{
			CFBDConfig: cfg.CFBD,
			Cache:      bodies,
			Logger:     logger,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// selectWeather reuses the data provider when it serves weather itself (the fixture season).
func selectWeather(cfg config.Config, base providers.DataProvider, bodies cache.BodyCache, logger *slog.Logger) providers.WeatherProvider {
	if wx, ok := base.(providers.WeatherProvider); ok {
		return wx
	}
	return openweather.NewClient(openweather.Config{
		WeatherConfig: cfg.Weather,
		Cache:         bodies,
		Logger:        logger,
	})
}
