package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	xerrors "backoffice-client/internal/pkg/errors"
)

const redisKeyPrefix = "backoffice:"

// RedisStore keeps the mirror in Redis for shared environments (kiosks,
// terminal pools) where a local file would not follow the operator.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects and pings the configured Redis instance.
func NewRedisStore(cfg Config) (*RedisStore, error) {
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("no Redis address provided")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", xerrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Batch applies the whole mutation in one transactional pipeline.
func (s *RedisStore) Batch(ctx context.Context, set map[string]string, del []string) error {
	pipe := s.client.TxPipeline()
	for k, v := range set {
		pipe.Set(ctx, redisKeyPrefix+k, v, 0)
	}
	for _, k := range del {
		pipe.Del(ctx, redisKeyPrefix+k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis batch: %w", err)
	}
	return nil
}
