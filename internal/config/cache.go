package config

import "time"

// CacheConfig enables the Redis response cache when RedisURL is set.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// Enabled reports whether a Redis URL is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

func loadCache(src source) CacheConfig {
	return CacheConfig{
		RedisURL: src.str(envRedisURL, ""),
		TTL:      src.duration(envCacheTTL, defaultCacheTTL),
	}
}
