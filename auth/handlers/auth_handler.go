// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/auth/errors"
	"github.com/skillswap/admin-api/auth/services"
	"github.com/skillswap/admin-api/internal/middleware/authjwt"
)

// AuthHandler handles all session gate HTTP requests
type AuthHandler struct {
	authService services.AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler with injected dependencies
func NewAuthHandler(authService services.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token
// Endpoint: POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password, c.IP())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    result.Token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(http.StatusOK).JSON(result)
}

// Session is the on-mount check: returns the authenticated admin
// Endpoint: GET /auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleUnauthorized(c)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  admin.Role,
	})
}

// Logout invalidates the caller's session
// Endpoint: POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleUnauthorized(c)
	}

	if err := h.authService.Logout(c.Context(), admin); err != nil {
		return errors.HandleServiceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
