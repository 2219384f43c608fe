package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"message-printer/pkg"
)

// MessageRecord is the msgpack value stored in redis.
type MessageRecord struct {
	Text      string    `msgpack:"text"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

type RedisSource struct {
	client *pkg.RedisClient
	key    string
	logger *zap.Logger
}

// NewRedisSource reads the record stored at prefix+key.
func NewRedisSource(client *pkg.RedisClient, prefix, key string, logger *zap.Logger) *RedisSource {
	return &RedisSource{
		client: client,
		key:    prefix + key,
		logger: logger,
	}
}

func (repo *RedisSource) GetMessage(ctx context.Context) (string, error) {
	raw, err := repo.client.Client.Get(ctx, repo.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: key %q", ErrMessageNotFound, repo.key)
	}
	if err != nil {
		repo.logger.Error("failed to get message", zap.String("key", repo.key), zap.Error(err))
		return "", fmt.Errorf("get message %q: %w", repo.key, err)
	}

	var record MessageRecord
	if err := msgpack.Unmarshal(raw, &record); err != nil {
		return "", fmt.Errorf("decode message %q: %w", repo.key, err)
	}
	return record.Text, nil
}

// Save stores text with the current time. Zero expiration keeps it forever.
func (repo *RedisSource) Save(ctx context.Context, text string, expiration time.Duration) error {
	raw, err := msgpack.Marshal(&MessageRecord{Text: text, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode message %q: %w", repo.key, err)
	}
	if err := repo.client.Client.Set(ctx, repo.key, raw, expiration).Err(); err != nil {
		return fmt.Errorf("set message %q: %w", repo.key, err)
	}
	return nil
}
