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
	"github.com/skillswap/admin-api/reports/errors"
	"github.com/skillswap/admin-api/reports/services"
)

// ReportHandler handles all report moderation HTTP requests
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler with injected dependencies
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// WarnRequest represents the request body for warning a reported user
type WarnRequest struct {
	Message string `json:"message"`
}

// List returns a derived page of reports
// Endpoint: GET /reports?search=&status=&sort=&page=
func (h *ReportHandler) List(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.reportService.List(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// Warn sends a warning to the reported user and resolves the report
// Endpoint: POST /reports/:id/warn
func (h *ReportHandler) Warn(c *fiber.Ctx) error {
	reportID := c.Params("id")
	if reportID == "" {
		return errors.HandleValidationError(c, "report id is required")
	}

	var req WarnRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	if err := h.reportService.Warn(c.Context(), reportID, admin.ID, req.Message); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Warning sent successfully",
	})
}

// Ignore dismisses a report
// Endpoint: DELETE /reports/:id
func (h *ReportHandler) Ignore(c *fiber.Ctx) error {
	reportID := c.Params("id")
	if reportID == "" {
		return errors.HandleValidationError(c, "report id is required")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	if err := h.reportService.Ignore(c.Context(), reportID, admin.ID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Report dismissed successfully",
	})
}
