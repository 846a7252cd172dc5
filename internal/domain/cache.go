package domain

import (
	"context"
	"time"
)

// Cache is the read-path cache gateway. Get returns nil, nil on a miss so
// callers can treat misses and disabled caching the same way.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
