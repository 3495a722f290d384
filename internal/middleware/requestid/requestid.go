package requestid

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"

	"github.com/skillswap/admin-api/internal/pkg/log"
)

const (
	// HeaderRequestID is the HTTP header name for request ID
	HeaderRequestID = "X-Request-ID"
	// ContextKeyRequestID is the key used to store request ID in Fiber context
	ContextKeyRequestID = "request_id"
)

// New creates a middleware that generates or uses an existing X-Request-ID header
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)

		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		// Store in context for use by handlers and logger
		c.Locals(ContextKeyRequestID, requestID)

		// Set response header so the client can track the request
		c.Set(HeaderRequestID, requestID)

		return c.Next()
	}
}

// GetRequestID retrieves the request ID from Fiber context
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// Context returns a request-scoped context carrying the request ID, so
// service-layer logging can correlate with the HTTP request.
func Context(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id := GetRequestID(c); id != "" {
		ctx = log.WithRequestID(ctx, id)
	}
	return ctx
}
