package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// Default: client IP
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// Redis is optional. Without it counters live in process memory.
	Redis *goredis.Client
}

func DefaultRateLimitConfig(limit int, client *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Minute,
		KeyPrefix: "rl:ip:",
		Redis:     client,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// KEYS[1] = counter key, ARGV[1] = window in seconds.
// Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

type localCounters struct {
	entries sync.Map
	window  time.Duration
}

func (l *localCounters) hit(key string, now time.Time) (int, time.Time) {
	v, _ := l.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(l.window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(l.window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

func (l *localCounters) sweep(now time.Time) {
	l.entries.Range(func(key, value any) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			l.entries.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}

// RateLimitMiddleware counts requests per key in fixed windows. Redis errors
// fall back to local counters so an unreachable Redis never blocks traffic.
// A non-positive Limit disables limiting.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	local := &localCounters{window: config.Window}
	var sweepMu sync.Mutex
	lastSweep := time.Now()

	return func(c *gin.Context) {
		now := time.Now()
		key := config.KeyPrefix + config.KeyFunc(c)

		var (
			count   int
			resetAt time.Time
			err     error
		)
		if config.Redis != nil {
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), config.Redis, key, config.Window)
			if err != nil {
				logger.Log.Warn("Rate limit falling back to local counters", "error", err)
			}
		}
		if config.Redis == nil || err != nil {
			count, resetAt = local.hit(key, now)
			sweepMu.Lock()
			if now.Sub(lastSweep) > 5*time.Minute {
				lastSweep = now
				local.sweep(now)
			}
			sweepMu.Unlock()
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded",
				"client_ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", RequestIDFrom(c),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("redis rate limit: unexpected result %v", result)
	}

	ttl := result[1]
	if ttl < 0 {
		ttl = int64(window.Seconds())
	}
	return int(result[0]), time.Now().Add(time.Duration(ttl) * time.Second), nil
}
