package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Limiter decides whether a keyed request is within quota.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over quota with 429. The key is client IP plus the route
// pattern, so every token under /reset-password/:token shares one bucket.
// Limiter failures let the request through so a Redis outage does not lock users out.
func RateLimit(limiter Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP() + ":" + c.Route().Path
		ok, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			logger.Warn("Rate limiter unavailable", zap.Error(err), zap.String("key", key))
			return c.Next()
		}
		if !ok {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many requests, please try again later"})
		}
		return c.Next()
	}
}
