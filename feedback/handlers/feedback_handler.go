// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/skillswap/admin-api/feedback/errors"
	"github.com/skillswap/admin-api/feedback/services"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/middleware/authjwt"
)

// FeedbackHandler handles all feedback-related HTTP requests
type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler with injected dependencies
func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// List returns a derived page of feedback records
// Endpoint: GET /feedback?search=&status=&sort=&page=
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.feedbackService.List(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// Approve marks a feedback record as approved
// Endpoint: PUT /feedback/:id/approve
func (h *FeedbackHandler) Approve(c *fiber.Ctx) error {
	feedbackID := c.Params("id")
	if feedbackID == "" {
		return errors.HandleValidationError(c, "feedback id is required")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	if err := h.feedbackService.Approve(c.Context(), feedbackID, admin.ID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Feedback approved successfully",
	})
}

// Delete removes a feedback record
// Endpoint: DELETE /feedback/:id
func (h *FeedbackHandler) Delete(c *fiber.Ctx) error {
	feedbackID := c.Params("id")
	if feedbackID == "" {
		return errors.HandleValidationError(c, "feedback id is required")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	if err := h.feedbackService.Delete(c.Context(), feedbackID, admin.ID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Feedback deleted successfully",
	})
}
