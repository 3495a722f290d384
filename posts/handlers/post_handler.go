// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/middleware/authjwt"
	"github.com/skillswap/admin-api/posts/errors"
	"github.com/skillswap/admin-api/posts/services"
)

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List returns a derived page of pending posts
// Endpoint: GET /posts?search=&sort=&page=
func (h *PostHandler) List(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.postService.List(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// Delete removes a post record
// Endpoint: DELETE /posts/:id
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	postID := c.Params("id")
	if postID == "" {
		return errors.HandleValidationError(c, "post id is required")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	if err := h.postService.Delete(c.Context(), postID, admin.ID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}
