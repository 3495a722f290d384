// Package ratelimit provides rate limiting middleware for authentication
// endpoints.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/skillswap/admin-api/internal/pkg/log"
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Name is the human-readable endpoint name used in logs and messages.
	Name string

	// Max requests allowed per window.
	Max int

	// Window is the sliding window duration.
	Window time.Duration

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// KeyGenerator overrides the default IP+path key (optional)
	KeyGenerator func(c *fiber.Ctx) string
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	if config.Name == "" {
		config.Name = "request"
	}
	if config.Max <= 0 {
		config.Max = 5
	}
	if config.Window <= 0 {
		config.Window = 15 * time.Minute
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	return limiter.New(limiter.Config{
		Max:          config.Max,
		Expiration:   config.Window,
		KeyGenerator: config.KeyGenerator,
		Next:         config.Next,
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("[RateLimit] Rate limit exceeded for %s from IP: %s", config.Name, c.IP())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s attempts. Please try again later.", config.Name),
				"retryAfter": int(config.Window.Seconds()),
			})
		},
	})
}

// NewLoginLimiter creates a rate limiter for the login endpoint.
func NewLoginLimiter(max int, window time.Duration) fiber.Handler {
	return New(Config{Name: "login", Max: max, Window: window})
}
