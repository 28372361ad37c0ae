package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/storewarden/storewarden/internal/model"
)

// Cache key prefixes and TTLs.
const (
	userKeyPrefix = "user:"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = 1 * time.Hour
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// UserKey returns the Redis key for a user ID.
func UserKey(id string) string {
	return userKeyPrefix + id
}

// GetUser retrieves a user from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	key := UserKey(id)

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	user := &model.User{
		ID:    id,
		Name:  result["name"],
		Email: result["email"],
	}

	if ts, err := strconv.ParseInt(result["created_at"], 10, 64); err == nil {
		user.CreatedAt = time.Unix(ts, 0).UTC()
	}
	if ts, err := strconv.ParseInt(result["updated_at"], 10, 64); err == nil {
		user.UpdatedAt = time.Unix(ts, 0).UTC()
	}

	return user, nil
}

// SetUser stores a user in cache.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := UserKey(user.ID)

	fields := map[string]any{
		"name":       user.Name,
		"email":      user.Email,
		"created_at": strconv.FormatInt(user.CreatedAt.Unix(), 10),
		"updated_at": strconv.FormatInt(user.UpdatedAt.Unix(), 10),
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultUserTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	return nil
}

// DeleteUser removes a user from cache.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, UserKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}
