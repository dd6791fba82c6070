package config

import "time"

const (
	envConfigFile   = "CONFIG_FILE"
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envSeason       = "CFBD_SEASON"
	envCorsOrigins  = "CORS_ALLOWED_ORIGINS"

	envCfbdBaseURL     = "CFBD_BASE_URL"
	envCfbdAPIKey      = "CFBD_API_KEY"
	envCfbdTimeout     = "CFBD_TIMEOUT"
	envCfbdAttempts    = "CFBD_MAX_ATTEMPTS"
	envCfbdRPS         = "CFBD_REQUESTS_PER_SECOND"
	envCfbdBreaker     = "CFBD_BREAKER_ENABLED"
	envWeatherBaseURL  = "WEATHER_BASE_URL"
	envWeatherAPIKey   = "WEATHER_API_KEY"
	envWeatherTimeout  = "WEATHER_TIMEOUT"
	envWeatherRPS      = "WEATHER_REQUESTS_PER_SECOND"
	envStatsWorkers    = "STATS_WORKERS"
	envStatsRPS        = "STATS_REQUESTS_PER_SECOND"
	envDefaultDivision = "DEFAULT_DIVISION"
	envRedisURL        = "REDIS_URL"
	envCacheTTL        = "CACHE_TTL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// Board warm cadence; CFBD free tier allows 1000 calls/month so keep this loose.
	defaultPollInterval = 5 * time.Minute
	defaultProvider     = ProviderCFBD
	defaultCorsOrigins  = "*"

	defaultCfbdBaseURL    = "https://api.collegefootballdata.com"
	defaultCfbdTimeout    = 10 * time.Second
	defaultCfbdAttempts   = 1
	defaultCfbdRPS        = 10.0
	defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultWeatherTimeout = 10 * time.Second
	// OpenWeather free tier: 60 calls/minute.
	defaultWeatherRPS   = 1.0
	defaultStatsWorkers = 3
	// Three requests per 500ms window.
	defaultStatsRPS        = 6.0
	defaultDivision        = "fbs"
	defaultCacheTTL        = 10 * time.Minute
	defaultMetricsPort     = "9090"
	defaultOtelServiceName = "cfb-data-service"

	// PlaceholderAPIKey is the development stand-in that disables upstream calls.
	PlaceholderAPIKey = "fallback_key_for_development"

	ProviderCFBD    = "cfbd"
	ProviderFixture = "fixture"
)
