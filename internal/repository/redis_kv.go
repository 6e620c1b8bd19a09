package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/gomarketplace-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "kv:"

type redisKV struct {
	client *redis.Client
}

// NewRedisKV stores values without expiry; a cart lives until it is overwritten.
func NewRedisKV(client *redis.Client) port.KVStore {
	return &redisKV{client: client}
}

func (r *redisKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	value, err := r.client.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (r *redisKV) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisKV) RemoveItem(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}
