// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/notifications/handlers"
)

// NotificationsHandlers holds all the handlers this router needs
type NotificationsHandlers struct {
	NotificationHandler *handlers.NotificationHandler
}

// RegisterRoutes is the single entry point for setting up notifications routes
func RegisterRoutes(app *fiber.App, h *NotificationsHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/notifications", authMiddleware)

	group.Get("/", h.NotificationHandler.List)
	group.Post("/announce", h.NotificationHandler.Announce)
	group.Put("/:id/read", h.NotificationHandler.MarkRead)
	group.Delete("/:id", h.NotificationHandler.Delete)
}
