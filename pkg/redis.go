package pkg

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const RedisClientService = "redis_client"

type RedisClient struct {
	Client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(options *redis.Options, logger *zap.Logger) *RedisClient {
	return &RedisClient{
		Client: redis.NewClient(options),
		logger: logger,
	}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s: %w", r.Client.Options().Addr, err)
	}
	return nil
}

func (r *RedisClient) ShutdownFunc() {
	if err := r.Client.Close(); err != nil {
		r.logger.Error("failed to close redis", zap.Error(err))
		return
	}
	r.logger.Info("redis closed")
}
