package ratelimit

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedApp(max int, window time.Duration) *fiber.App {
	app := fiber.New()
	app.Use(NewLoginLimiter(max, window))
	app.Post("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func postFrom(t *testing.T, app *fiber.App, ip string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", ip)

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimit_SuccessWithinLimits(t *testing.T) {
	app := newLimitedApp(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 200, postFrom(t, app, "192.168.1.1"))
	}
}

func TestRateLimit_RejectsExcessiveRequests(t *testing.T) {
	app := newLimitedApp(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		require.Equal(t, 200, postFrom(t, app, "192.168.1.1"))
	}

	req := httptest.NewRequest("POST", "/test", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", "192.168.1.1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 429, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "RATE_LIMIT_EXCEEDED")
	assert.Contains(t, string(body), "login")
}

func TestRateLimit_FreshWindowHasFullBudget(t *testing.T) {
	app := newLimitedApp(2, 15*time.Minute)

	require.Equal(t, 200, postFrom(t, app, "10.0.0.1"))
	require.Equal(t, 200, postFrom(t, app, "10.0.0.1"))
	require.Equal(t, 429, postFrom(t, app, "10.0.0.1"))

	// A fresh limiter instance starts with a full budget.
	app2 := newLimitedApp(2, 15*time.Minute)
	assert.Equal(t, 200, postFrom(t, app2, "10.0.0.1"))
}

func TestRateLimit_DefaultsApplied(t *testing.T) {
	handler := New(Config{})
	require.NotNil(t, handler)
}
