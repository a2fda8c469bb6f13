package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/fleetops/depot-backend/pkg/logger"
)

// cacheTTL decides whether a request is cacheable and for how long.
// Only stock reads are cached: auth and account responses are per user,
// exports are large one-off workbooks, and mutations obviously pass
// through. Aggregates that feed dispatch decisions stay fresher than
// plain resource lists.
func cacheTTL(method, path string) (time.Duration, bool) {
	if method != "GET" && method != "HEAD" {
		return 0, false
	}
	if ClassifyRoute(method, path) != ClassRead {
		return 0, false
	}

	switch {
	case strings.HasPrefix(path, "/api/low-stock"):
		return 30 * time.Second, true
	case strings.HasSuffix(path, "/assigned"), strings.HasSuffix(path, "/history"):
		return time.Minute, true
	case strings.HasPrefix(path, "/api/movements"):
		return time.Minute, true
	default:
		// Resource lists and detail views
		return 5 * time.Minute, true
	}
}

// CacheMiddleware caches stock read responses in Redis. Writes do not
// invalidate here; entries just age out on their TTL, and admins can
// force a flush through the gateway after out-of-band corrections.
func CacheMiddleware(redisClient *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		ttl, cacheable := cacheTTL(c.Method(), c.Path())
		if !cacheable {
			return c.Next()
		}

		cacheKey := generateCacheKey(c)

		ctx := context.Background()
		cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cachedResponse)
		}

		err = c.Next()

		// Only successful reads are worth replaying; a 404 for a resource
		// that gets created a moment later must not stick around
		if c.Response().StatusCode() == fiber.StatusOK {
			responseBody := c.Response().Body()

			if cacheErr := redisClient.Set(ctx, cacheKey, responseBody, ttl).Err(); cacheErr != nil {
				logger.Logger.Warn().
					Err(cacheErr).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			} else {
				logger.Logger.Debug().
					Str("path", c.Path()).
					Dur("ttl", ttl).
					Int("size", len(responseBody)).
					Msg("Response cached")
			}

			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// generateCacheKey builds a key from the request shape and the caller's
// token, so two accounts never see each other's cached responses
func generateCacheKey(c *fiber.Ctx) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

// InvalidateCache drops every cached response matching pattern
func InvalidateCache(redisClient *redis.Client, pattern string) error {
	ctx := context.Background()

	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}

		logger.Logger.Info().
			Int("count", len(keys)).
			Str("pattern", pattern).
			Msg("Cache invalidated")
	}

	return nil
}
