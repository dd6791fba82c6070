package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval time.Duration
	Provider     string
	Season       int
	CORSOrigins  []string
	CFBD         CFBDConfig
	Weather      WeatherConfig
	Aggregation  AggregationConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables (and CONFIG_FILE when set) with
// sensible defaults.
func Load() Config {
	src := newSource()
	return Config{
		Port:         src.str(envPort, defaultPort),
		PollInterval: src.duration(envPollInterval, defaultPollInterval),
		Provider:     strings.ToLower(src.str(envProvider, defaultProvider)),
		Season:       src.int(envSeason, DefaultSeason(time.Now())),
		CORSOrigins:  src.list(envCorsOrigins, defaultCorsOrigins),
		CFBD:         loadCFBD(src),
		Weather:      loadWeather(src),
		Aggregation:  loadAggregation(src),
		Cache:        loadCache(src),
		Metrics:      loadMetrics(src),
	}
}

// Validate reports configuration that cannot produce a working server. A disabled CFBD key is
// not an error; upstream calls short-circuit to empty results instead.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderCFBD, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.Season < 1869 {
		errs = append(errs, fmt.Errorf("season %d out of range", c.Season))
	}
	if !ValidDivision(c.Aggregation.DefaultDivision) {
		errs = append(errs, fmt.Errorf("unknown default division %q", c.Aggregation.DefaultDivision))
	}
	if c.CFBD.BaseURL == "" {
		errs = append(errs, errors.New("cfbd base url is empty"))
	}
	return errors.Join(errs...)
}

// DefaultSeason picks the season a date belongs to; January through July still count toward
// the previous fall.
func DefaultSeason(now time.Time) int {
	if now.Month() < time.August {
		return now.Year() - 1
	}
	return now.Year()
}

// ValidDivision reports whether raw names a supported division filter.
func ValidDivision(raw string) bool {
	switch strings.ToLower(raw) {
	case "fbs", "fcs", "all":
		return true
	}
	return false
}
