package config

import (
	"strings"
	"time"
)

// WeatherConfig controls the venue weather lookups.
type WeatherConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Enabled reports whether a weather key is configured.
func (c WeatherConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func loadWeather(src source) WeatherConfig {
	return WeatherConfig{
		BaseURL: src.str(envWeatherBaseURL, defaultWeatherBaseURL),
		APIKey:  src.str(envWeatherAPIKey, ""),
		Timeout: src.duration(envWeatherTimeout, defaultWeatherTimeout),

		RequestsPerSecond: src.float(envWeatherRPS, defaultWeatherRPS),
	}
}
