package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when Redis is unreachable; callers treat a nil client as
// "no cache".
func ConnectRedis(ctx context.Context, cfg *Config, logger *zap.Logger) *redis.Client {
	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("Failed to parse Redis URL, running without cache", zap.Error(err))
			return nil
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis connection failed, running without cache", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("Redis connected", zap.String("addr", opt.Addr))
	return client
}
