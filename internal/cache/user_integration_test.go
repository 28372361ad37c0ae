//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storewarden/storewarden/internal/model"
	"github.com/storewarden/storewarden/internal/testutil"
)

func TestIntegrationCache_UserRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	now := time.Now().UTC().Truncate(time.Second)
	user := &model.User{
		ID:        testutil.UniqueID("user"),
		Name:      "cached",
		Email:     "cached@example.com",
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now,
	}

	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	retrieved, err := c.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.Name != user.Name {
		t.Errorf("Name mismatch: got %q, want %q", retrieved.Name, user.Name)
	}
	if retrieved.Email != user.Email {
		t.Errorf("Email mismatch: got %q, want %q", retrieved.Email, user.Email)
	}
	// Timestamps are stored as Unix seconds.
	if !retrieved.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", retrieved.CreatedAt, user.CreatedAt)
	}
	if !retrieved.UpdatedAt.Equal(user.UpdatedAt) {
		t.Errorf("UpdatedAt mismatch: got %v, want %v", retrieved.UpdatedAt, user.UpdatedAt)
	}
}

func TestIntegrationCache_GetUserMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	_, err := c.GetUser(ctx, "nonexistent-id")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got: %v", err)
	}
}

func TestIntegrationCache_DeleteUser(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := &model.User{
		ID:        testutil.UniqueID("user"),
		Name:      "evicted",
		Email:     "evicted@example.com",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	if err := c.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := c.GetUser(ctx, user.ID); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got: %v", err)
	}

	// Deleting an absent key is not an error.
	if err := c.DeleteUser(ctx, user.ID); err != nil {
		t.Errorf("DeleteUser on absent key failed: %v", err)
	}
}

func TestIntegrationCache_SetUserExpires(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	user := &model.User{
		ID:        testutil.UniqueID("user"),
		Name:      "ttl",
		Email:     "ttl@example.com",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	ttl, err := c.Client().TTL(ctx, UserKey(user.ID)).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > DefaultUserTTL {
		t.Errorf("TTL = %v, want in (0, %v]", ttl, DefaultUserTTL)
	}
}

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping redis: %v", err)
	}

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}
