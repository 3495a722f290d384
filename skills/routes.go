// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package skills

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/skills/handlers"
)

// SkillsHandlers holds all the handlers this router needs
type SkillsHandlers struct {
	SkillHandler *handlers.SkillHandler
}

// RegisterRoutes is the single entry point for setting up skills routes
func RegisterRoutes(app *fiber.App, h *SkillsHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/skills", authMiddleware)

	group.Get("/", h.SkillHandler.Distribution)
	group.Post("/", h.SkillHandler.Add)
}
