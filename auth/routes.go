// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/auth/handlers"
	"github.com/skillswap/admin-api/internal/middleware/ratelimit"
	platformconfig "github.com/skillswap/admin-api/internal/platform/config"
)

// AuthHandlers holds all the handlers this router needs
type AuthHandlers struct {
	AuthHandler *handlers.AuthHandler
}

// RegisterRoutes is the single entry point for setting up auth routes
func RegisterRoutes(app *fiber.App, h *AuthHandlers, authMiddleware fiber.Handler, cfg *platformconfig.Config) {
	group := app.Group("/auth")

	login := group.Group("/login")
	if cfg.RateLimits.Login.Enabled {
		login.Use(ratelimit.NewLoginLimiter(cfg.RateLimits.Login.Max, cfg.RateLimits.Login.Duration))
	}
	login.Post("/", h.AuthHandler.Login)

	group.Get("/session", authMiddleware, h.AuthHandler.Session)
	group.Post("/logout", authMiddleware, h.AuthHandler.Logout)
}
