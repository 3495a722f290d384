// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/overview/errors"
	"github.com/skillswap/admin-api/overview/services"
)

// OverviewHandler handles the dashboard landing HTTP requests
type OverviewHandler struct {
	overviewService services.OverviewService
}

// NewOverviewHandler creates a new OverviewHandler with injected dependencies
func NewOverviewHandler(overviewService services.OverviewService) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// Overview returns the stat cards and charts
// Endpoint: GET /overview
func (h *OverviewHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.overviewService.Overview(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(overview)
}
