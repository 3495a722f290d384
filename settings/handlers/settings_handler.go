// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/internal/middleware/authjwt"
	"github.com/skillswap/admin-api/settings/errors"
	"github.com/skillswap/admin-api/settings/services"
)

// SettingsHandler handles all account settings HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with injected dependencies
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateProfileRequest represents the request body for editing the profile
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest represents the request body for changing the password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AddAdminRequest represents the request body for adding an administrator
type AddAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile returns the caller's registry record
// Endpoint: GET /settings/profile
func (h *SettingsHandler) Profile(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	profile, err := h.settingsService.Profile(c.Context(), admin.ID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(profile)
}

// UpdateProfile edits the caller's own name and email
// Endpoint: PUT /settings/profile
func (h *SettingsHandler) UpdateProfile(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if err := h.settingsService.UpdateProfile(c.Context(), admin.ID, req.Name, req.Email); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
	})
}

// ChangePassword changes the caller's password
// Endpoint: PUT /settings/password
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if err := h.settingsService.ChangePassword(c.Context(), admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Password changed successfully",
	})
}

// AddAdmin registers a new administrator
// Endpoint: POST /settings/admins
func (h *SettingsHandler) AddAdmin(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	var req AddAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	key, err := h.settingsService.AddAdmin(c.Context(), admin.ID, req.Name, req.Email, req.Password)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":      key,
		"message": "Administrator added successfully",
	})
}
