package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
	"github.com/yigit/campuslink/internal/pkg/logger"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IPRateLimiter keeps a token bucket per key in process memory.
type IPRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimiterEntry
	r       rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a limiter allowing perMinute requests per key with the given burst.
// Buckets idle for longer than idleTTL are dropped by Cleanup.
func NewIPRateLimiter(perMinute, burst int, idleTTL time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		entries: make(map[string]*rateLimiterEntry),
		r:       rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (rl *IPRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.entries[key]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

// Cleanup drops buckets that have been idle for longer than the idle TTL.
func (rl *IPRateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := rl.now().Add(-rl.idleTTL)
	for key, entry := range rl.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.entries, key)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (rl *IPRateLimiter) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// RedisRateLimiter counts requests per key in fixed windows shared through Redis,
// so every instance enforces the same limit.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisRateLimiter creates a limiter allowing limit requests per window per key.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "campuslink:rate_limit:",
	}
}

// Allow implements Limiter.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := rl.prefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expiry: %w", err)
		}
	}

	return count <= int64(rl.limit), nil
}

// RateLimit rejects requests over the limit with 429. The key is the client IP
// plus the route. If the limiter itself fails the request is let through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !allowed {
			logger.Warn().Str("ip", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("Rate limit exceeded")
			HandleAPIError(c, apperrors.ErrTooManyRequests, "")
			return
		}

		c.Next()
	}
}
