// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/skills/errors"
	"github.com/skillswap/admin-api/skills/services"
)

// SkillHandler handles all skill distribution HTTP requests
type SkillHandler struct {
	skillService services.SkillService
}

// NewSkillHandler creates a new SkillHandler with injected dependencies
func NewSkillHandler(skillService services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// AddSkillRequest represents the request body for adding a skill
type AddSkillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
}

// Distribution returns the skills usage distribution
// Endpoint: GET /skills?search=&filter=&sort=&page=
func (h *SkillHandler) Distribution(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.skillService.Distribution(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// Add creates a new skill
// Endpoint: POST /skills
func (h *SkillHandler) Add(c *fiber.Ctx) error {
	var req AddSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	key, err := h.skillService.Add(c.Context(), req.Name, req.Description, req.CategoryID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":      key,
		"message": "Skill added successfully",
	})
}
