// Package ordercache keeps recently read orders in Redis.
package ordercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const (
	// DefaultTTL bounds how long an entry lives when no TTL is configured.
	DefaultTTL = 5 * time.Minute
	keyPrefix  = "order:"
)

var _ ports.OrderCache = (*Cache)(nil)

// Cache stores orders as JSON under "order:<id>" with a fixed TTL.
//
// Example:
//
//	rdb, err := ordercache.Connect(ctx, "redis://localhost:6379/0")
//	if err != nil {
//		return err
//	}
//	cache := ordercache.New(rdb, time.Minute)
//	err = cache.Set(ctx, saved)
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps a connected client. A non-positive ttl falls back to DefaultTTL.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

// Get reports ok=false on a miss. An entry that no longer decodes is dropped
// and treated as a miss.
func (c *Cache) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached order: %w", err)
	}

	cached, err := decode(raw)
	if err != nil {
		_ = c.rdb.Del(ctx, key(id)).Err()
		return nil, false, err
	}
	return cached, true, nil
}

// Set stores the order, replacing any cached copy. Orders without an identity
// are rejected with kernel.ErrUUIDIsNotConstructed.
func (c *Cache) Set(ctx context.Context, aggregate *order.Order) error {
	raw, err := c.encode(aggregate)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(aggregate.ID()), raw, c.ttl).Err()
}

// SetIfAbsent stores the order only when the key is free, using SETNX.
func (c *Cache) SetIfAbsent(ctx context.Context, aggregate *order.Order) error {
	raw, err := c.encode(aggregate)
	if err != nil {
		return err
	}
	return c.rdb.SetNX(ctx, key(aggregate.ID()), raw, c.ttl).Err()
}

// Delete drops the cached copy.
func (c *Cache) Delete(ctx context.Context, id kernel.UUID) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

func (c *Cache) encode(aggregate *order.Order) ([]byte, error) {
	if aggregate.IsNew() {
		return nil, kernel.ErrUUIDIsNotConstructed
	}

	raw, err := encode(aggregate)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}
	return raw, nil
}

func key(id kernel.UUID) string {
	return keyPrefix + id.String()
}
