// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/users/errors"
	"github.com/skillswap/admin-api/users/services"
)

// UserHandler handles all member administration HTTP requests
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler with injected dependencies
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents the request body for editing a member
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// List returns a derived page of members
// Endpoint: GET /users?search=&filter=&sort=&page=
func (h *UserHandler) List(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.userService.List(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// Update edits a member's name and email
// Endpoint: PUT /users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return errors.HandleValidationError(c, "user id is required")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if err := h.userService.Update(c.Context(), userID, req.Name, req.Email); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
	})
}

// Delete removes a member record
// Endpoint: DELETE /users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return errors.HandleValidationError(c, "user id is required")
	}

	if err := h.userService.Delete(c.Context(), userID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
