package auth_middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// CheckoutRateLimiter limits checkout-session creation per IP. Checkout
// creates upstream objects, so a runaway client should be throttled before
// it reaches the billing processor.
var CheckoutRateLimiter = limiter.New(limiter.Config{
	Max:        10,
	Expiration: 1 * time.Minute,
	KeyGenerator: func(c *fiber.Ctx) string {
		return "checkout:" + c.IP()
	},
	LimitReached: func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":   "Too many checkout attempts",
			"message": "Please try again later",
		})
	},
})
