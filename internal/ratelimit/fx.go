package ratelimit

import (
	"github.com/redis/go-redis/v9"
	"github.com/turmapay/turmapay/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewRedisClient returns nil when no redis address is configured.
// Locking and throttling degrade to no-ops in that case.
func NewRedisClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Named("ratelimit").Info("redis not configured, distributed locking disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

var Module = fx.Module("rate.limit",
	fx.Provide(NewRedisClient),
	fx.Provide(NewLocker),
	fx.Provide(NewTokenBucket),
)
