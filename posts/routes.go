// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up posts routes
func RegisterRoutes(app *fiber.App, h *PostsHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/posts", authMiddleware)

	group.Get("/", h.PostHandler.List)
	group.Delete("/:id", h.PostHandler.Delete)
}
