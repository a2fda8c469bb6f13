package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fleetops/depot-backend/pkg/logger"
)

// RatePolicy is the request budget for one route class
type RatePolicy struct {
	Limit  int
	Window time.Duration
}

// ratePolicies assigns each route class its budget. Protocol mutations
// are throttled harder than reads: a runaway client hammering reserve
// would otherwise contend on the resource row locks for everyone.
// Exports build whole workbooks and get the smallest budget.
var ratePolicies = map[RouteClass]RatePolicy{
	ClassAuth:     {Limit: 20, Window: time.Minute},
	ClassAccount:  {Limit: 60, Window: time.Minute},
	ClassRead:     {Limit: 120, Window: time.Minute},
	ClassMutation: {Limit: 30, Window: time.Minute},
	ClassExport:   {Limit: 5, Window: time.Minute},
	ClassInternal: {Limit: 120, Window: time.Minute},
}

// RateLimiter throttles requests per caller and route class using a
// Redis sliding window
type RateLimiter struct {
	redis *redis.Client
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		class := ClassifyRoute(c.Method(), c.Path())
		policy := ratePolicies[class]
		if policy.Limit == 0 {
			return c.Next()
		}

		// Authenticated callers are budgeted per account so a shared
		// depot workstation IP does not starve every technician on it
		identifier := c.IP()
		if userID := c.Locals("user_id"); userID != nil {
			identifier = fmt.Sprintf("user:%v", userID)
		}

		allowed, remaining, resetTime, err := rl.take(c.UserContext(), class, identifier, policy)
		if err != nil {
			logger.Logger.Error().
				Err(err).
				Str("identifier", identifier).
				Str("route_class", string(class)).
				Msg("Rate limiter error")
			// On error, allow request but log it
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", policy.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

		if !allowed {
			logger.Logger.Warn().
				Str("identifier", identifier).
				Str("route_class", string(class)).
				Int("limit", policy.Limit).
				Msg("Rate limit exceeded")

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Try again in %v", time.Until(resetTime).Round(time.Second)),
				"retry_after": time.Until(resetTime).Seconds(),
			})
		}

		return c.Next()
	}
}

// take records the request in the caller's sliding window and reports
// whether it fit the budget
func (rl *RateLimiter) take(ctx context.Context, class RouteClass, identifier string, policy RatePolicy) (bool, int, time.Time, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", class, identifier)
	now := time.Now()
	windowStart := now.Add(-policy.Window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, policy.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := policy.Limit - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(policy.Limit), remaining, now.Add(policy.Window), nil
}
