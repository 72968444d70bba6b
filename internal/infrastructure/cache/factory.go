package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/gasdepot/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewListingCache builds the listing cache backend selected by configuration.
// The redis backend verifies connectivity up front so a misconfigured cache
// fails at startup rather than degrading every request.
func NewListingCache(cfg *config.Config, logger *zap.Logger) (shared.ListingCache, error) {
	switch cfg.Cache.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		logger.Info("listing cache ready", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.RedisAddr()))
		return NewRedisListingCache(client, logger), nil
	default:
		logger.Info("listing cache ready", zap.String("backend", "memory"))
		return NewMemoryListingCache(), nil
	}
}
