package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// WriteLimiter caps state-changing requests per client IP per minute. Reads
// are never limited; limit <= 0 disables the limiter.
func WriteLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return isReadOnly(c.Method())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many write requests, slow down",
			})
		},
	})
}
