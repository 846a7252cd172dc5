package upload

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
)

// Limiter enforces a per-user rate limit on profile submissions with file
// uploads, using a Redis sliding window.
type Limiter struct {
	maxPerMinute int
}

// Sliding window rate limiting.
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in seconds
// ARGV[3] = current timestamp
// Returns: 1 if allowed, 0 if rate limited
const rateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, now .. '-' .. math.random(1000000))
redis.call('EXPIRE', key, window)
return 1
`

func NewLimiter(perMinute int) *Limiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &Limiter{maxPerMinute: perMinute}
}

// Allow reports whether the user may submit another upload right now.
// Fails open when Redis is unavailable.
func (l *Limiter) Allow(ctx context.Context, userID string) bool {
	client := redis.Client()
	if client == nil {
		return true
	}

	key := fmt.Sprintf("upload_limit:%s", userID)
	now := time.Now().Unix()

	res, err := client.Eval(ctx, rateLimitScript, []string{key}, l.maxPerMinute, 60, now).Int()
	if err != nil && err != goredis.Nil {
		logger.Log.Warn("upload limiter unavailable, allowing request", "error", err)
		return true
	}

	return res == 1
}
