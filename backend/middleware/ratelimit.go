package middleware

import (
	"context"
	"fmt"
	"time"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per caller in fixed windows stored in Redis.
// A nil *RateLimiter lets everything through.
type RateLimiter struct {
	redisClient redis.Cmdable
	logger      *utils.Logger
}

// NewRateLimiter uses a nop logger when logger is nil.
func NewRateLimiter(client redis.Cmdable, logger *utils.Logger) *RateLimiter {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &RateLimiter{redisClient: client, logger: logger}
}

// Limit allows limit requests per window for each caller of the routes it
// guards. Callers are keyed by user id when authenticated, otherwise by IP.
// Redis errors fail open.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || rl.redisClient == nil || limit <= 0 {
			return c.Next()
		}

		caller := CurrentUserID(c)
		if caller == "" {
			caller = c.IP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, caller)
		ctx := c.UserContext()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", "key", key, "error", err)
			return c.Next()
		}

		// first hit opens the window
		if count == 1 {
			rl.expire(ctx, key, window)
		}

		if count > int64(limit) {
			ttl, err := rl.redisClient.TTL(ctx, key).Result()
			// -1 means the key has no expiry: the window was never armed
			if err == nil && ttl == -1 {
				rl.expire(ctx, key, window)
			}
			if err != nil || ttl < 0 {
				ttl = window
			}
			seconds := int(ttl.Round(time.Second) / time.Second)
			c.Set(fiber.HeaderRetryAfter, fmt.Sprint(seconds))
			return utils.TooManyRequests(c, "Too many requests", fmt.Sprintf("%ds", seconds))
		}
		return c.Next()
	}
}

func (rl *RateLimiter) expire(ctx context.Context, key string, window time.Duration) {
	if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
		rl.logger.Warn("rate limit window not armed", "key", key, "error", err)
	}
}
