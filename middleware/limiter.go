package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func rateLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, message, nil)
		},
	})
}

// LoginRateLimiter throttles credential guessing per IP
func LoginRateLimiter() fiber.Handler {
	return rateLimiter(10, time.Minute, "Too many login attempts. Please try again shortly.")
}

func RegisterRateLimiter() fiber.Handler {
	return rateLimiter(5, 5*time.Minute, "Too many sign-up attempts. Please wait a few minutes.")
}

func ForgotPasswordRateLimiter() fiber.Handler {
	return rateLimiter(3, 10*time.Minute, "Too many reset requests. Please try again in 10 minutes.")
}
