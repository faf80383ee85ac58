package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
)

type redisCache struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{
		client: client,
		cfg:    cfg,
	}
}

func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

// Swap runs every SET and the DEL of drop inside MULTI/EXEC, so readers see
// either the old values or all of the new ones.
func (r *redisCache) Swap(ctx context.Context, entries []Entry, ttl time.Duration, drop ...string) error {
	payloads := make([][]byte, len(entries))
	keys := make([]string, len(entries))

	for i, entry := range entries {
		data, err := json.Marshal(entry.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", entry.Key, err)
		}

		payloads[i] = data
		keys[i] = entry.Key
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, entry := range entries {
			pipe.Set(ctx, entry.Key, payloads[i], ttl)
		}

		if len(drop) > 0 {
			pipe.Del(ctx, drop...)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to swap keys %s in redis: %w", strings.Join(keys, ","), err)
	}

	return nil
}

// Close is a no-op; the client is owned by main.
func (r *redisCache) Close() error {
	return nil
}
