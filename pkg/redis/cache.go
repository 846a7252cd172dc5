package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache adapts the shared Redis client to the domain cache gateway.
// All methods are no-ops when Redis was never initialized, so callers can
// wire it unconditionally.
type Cache struct{}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	cl := Client()
	if cl == nil {
		return nil, nil
	}

	val, err := cl.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cl := Client()
	if cl == nil {
		return nil
	}
	return cl.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, key string) error {
	cl := Client()
	if cl == nil {
		return nil
	}
	return cl.Del(ctx, key).Err()
}
