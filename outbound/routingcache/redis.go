package routingcache

import (
	"concert-purchase/common/constant"
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

// RedisCache shares concert to provider routing across processes. Entries
// are never invalidated here; TTL is the only eviction.
type RedisCache struct {
	Cache *redis.Client
	TTL   time.Duration
}

func NewRedisCache(cache *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Cache: cache, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context, concertId int32) (string, bool, error) {
	provider, err := c.Cache.Get(ctx, fmt.Sprintf(constant.ConcertTicketProviderKey, concertId)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get concert provider: %w", err)
	}

	return provider, true, nil
}

func (c *RedisCache) Set(ctx context.Context, concertId int32, provider string) error {
	err := c.Cache.Set(ctx, fmt.Sprintf(constant.ConcertTicketProviderKey, concertId), provider, c.TTL).Err()
	if err != nil {
		return fmt.Errorf("set concert provider: %w", err)
	}

	return nil
}

// Warm stores providers for concerts that have no entry yet. Existing entries
// are left alone.
func (c *RedisCache) Warm(ctx context.Context, providers map[int32]string) error {
	if len(providers) == 0 {
		return nil
	}

	pipe := c.Cache.TxPipeline()
	for concertId, provider := range providers {
		pipe.SetNX(ctx, fmt.Sprintf(constant.ConcertTicketProviderKey, concertId), provider, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("execute pipeline: %w", err)
	}

	return nil
}
