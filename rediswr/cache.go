package rediswr

import (
	"context"
	"errors"
	"time"

	"github.com/code19m/errx"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Cache stores JSON encoded values in Redis with a fixed TTL.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewCache creates a cache on client. Every key is prefixed with prefix and a colon.
func NewCache(client redis.Cmdable, ttl time.Duration, prefix string) *Cache {
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

// Get decodes the value stored under key into dst.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errx.Wrap(err, errx.WithDetails(errx.D{"key": c.key(key)}))
	}

	if err = json.Unmarshal(raw, dst); err != nil {
		return false, errx.Wrap(err, errx.WithDetails(errx.D{"key": c.key(key)}))
	}
	return true, nil
}

// Set stores value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errx.Wrap(err)
	}

	err = c.client.Set(ctx, c.key(key), raw, c.ttl).Err()
	return errx.Wrap(err, errx.WithDetails(errx.D{"key": c.key(key)}))
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.key(key)).Err()
	return errx.Wrap(err, errx.WithDetails(errx.D{"key": c.key(key)}))
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return errx.Wrap(c.client.Ping(ctx).Err())
}

func (c *Cache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}
