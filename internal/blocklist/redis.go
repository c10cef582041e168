package blocklist

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blocklist:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Add(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+jti, "", ttl).Err()
}

func (s *RedisStore) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
