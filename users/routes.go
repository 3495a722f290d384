// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/users/handlers"
)

// UsersHandlers holds all the handlers this router needs
type UsersHandlers struct {
	UserHandler *handlers.UserHandler
}

// RegisterRoutes is the single entry point for setting up users routes
func RegisterRoutes(app *fiber.App, h *UsersHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/users", authMiddleware)

	group.Get("/", h.UserHandler.List)
	group.Put("/:id", h.UserHandler.Update)
	group.Delete("/:id", h.UserHandler.Delete)
}
