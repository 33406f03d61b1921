package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// RedisAllocationCache stores encoded allocation results under a TTL.
type RedisAllocationCache struct {
	client *redis.Client
	ttl    time.Duration
	stats  counters
}

var _ ports.AllocationCache = (*RedisAllocationCache)(nil)

func NewRedisAllocationCache(client *redis.Client, ttl time.Duration) *RedisAllocationCache {
	return &RedisAllocationCache{client: client, ttl: ttl}
}

// NewRedisClient builds a client and verifies the server answers PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis cache: ping %s: %w", addr, err)
	}

	return client, nil
}

func (c *RedisAllocationCache) Get(ctx context.Context, key string) (_ *domain.AllocationResult, _ bool, err error) {
	defer obs.Time(ctx, "allocation.cache.Get")(&err)

	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.stats.misses.Inc()
		return nil, false, nil
	}
	if err != nil {
		c.stats.errors.Inc()
		return nil, false, fmt.Errorf("redis cache get %q: %w", key, err)
	}

	res, err := decodeResult(b)
	if err != nil {
		c.stats.errors.Inc()
		return nil, false, fmt.Errorf("redis cache get %q: %w", key, err)
	}

	c.stats.hits.Inc()
	return res, true, nil
}

func (c *RedisAllocationCache) Put(ctx context.Context, key string, res *domain.AllocationResult) (err error) {
	defer obs.Time(ctx, "allocation.cache.Put")(&err)

	b, err := encodeResult(res)
	if err != nil {
		c.stats.errors.Inc()
		return err
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.stats.errors.Inc()
		return fmt.Errorf("redis cache put %q: %w", key, err)
	}
	return nil
}

func (c *RedisAllocationCache) Stats() ports.CacheStats { return c.stats.snapshot() }
