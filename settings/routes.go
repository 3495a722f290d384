// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/settings/handlers"
)

// SettingsHandlers holds all the handlers this router needs
type SettingsHandlers struct {
	SettingsHandler *handlers.SettingsHandler
}

// RegisterRoutes is the single entry point for setting up settings routes
func RegisterRoutes(app *fiber.App, h *SettingsHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/settings", authMiddleware)

	group.Get("/profile", h.SettingsHandler.Profile)
	group.Put("/profile", h.SettingsHandler.UpdateProfile)
	group.Put("/password", h.SettingsHandler.ChangePassword)
	group.Post("/admins", h.SettingsHandler.AddAdmin)
}
