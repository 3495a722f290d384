// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package overview

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/overview/handlers"
)

// OverviewHandlers holds all the handlers this router needs
type OverviewHandlers struct {
	OverviewHandler *handlers.OverviewHandler
}

// RegisterRoutes is the single entry point for setting up overview routes
func RegisterRoutes(app *fiber.App, h *OverviewHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/overview", authMiddleware)

	group.Get("/", h.OverviewHandler.Overview)
}
