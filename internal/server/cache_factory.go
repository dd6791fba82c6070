package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/cache"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
)

const cacheConnectTimeout = 3 * time.Second

var newRedisCache = cache.NewRedis

// buildCache connects the Redis body cache when configured. A failed connection is logged and
// the service runs uncached.
func buildCache(cfg config.Config, logger *slog.Logger) (cache.BodyCache, func() error) {
	if !cfg.Cache.Enabled() {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheConnectTimeout)
	defer cancel()

	redisCache, err := newRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL)
	if err != nil {
		if logger != nil {
			logger.Warn("redis cache unavailable, continuing uncached", "error", err)
		}
		return nil, nil
	}
	if logger != nil {
		logger.Info("redis cache connected", slog.Duration("ttl", cfg.Cache.TTL))
	}
	return redisCache, redisCache.Close
}
