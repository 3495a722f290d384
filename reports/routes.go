// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/reports/handlers"
)

// ReportsHandlers holds all the handlers this router needs
type ReportsHandlers struct {
	ReportHandler *handlers.ReportHandler
}

// RegisterRoutes is the single entry point for setting up reports routes
func RegisterRoutes(app *fiber.App, h *ReportsHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/reports", authMiddleware)

	group.Get("/", h.ReportHandler.List)
	group.Post("/:id/warn", h.ReportHandler.Warn)
	group.Delete("/:id", h.ReportHandler.Ignore)
}
