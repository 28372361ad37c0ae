// Package cache provides the Redis-backed user lookup cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds the Redis client behind the user lookup cache.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and returns a Cache. The URL is parsed with
// redis.ParseURL, so redis:// and rediss:// schemes both work.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client and its connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying Redis client for test harness use.
// Production callers go through the typed Cache methods.
func (c *Cache) Client() *redis.Client {
	return c.client
}
