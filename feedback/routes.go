// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package feedback

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/feedback/handlers"
)

// FeedbackHandlers holds all the handlers this router needs
type FeedbackHandlers struct {
	FeedbackHandler *handlers.FeedbackHandler
}

// RegisterRoutes is the single entry point for setting up feedback routes
func RegisterRoutes(app *fiber.App, h *FeedbackHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/feedback", authMiddleware)

	group.Get("/", h.FeedbackHandler.List)
	group.Put("/:id/approve", h.FeedbackHandler.Approve)
	group.Delete("/:id", h.FeedbackHandler.Delete)
}
