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
	"github.com/skillswap/admin-api/notifications/errors"
	"github.com/skillswap/admin-api/notifications/services"
)

// NotificationHandler handles all notification HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with injected dependencies
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// AnnouncementRequest represents the request body for sending an announcement
type AnnouncementRequest struct {
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	Audience string `json:"audience"`
}

// List returns a derived page of notifications
// Endpoint: GET /notifications?search=&status=&sort=&page=
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params, err := listview.ParamsFromRequest(c)
	if err != nil {
		return errors.HandleValidationError(c, "Invalid list parameters")
	}

	page, err := h.notificationService.List(c.Context(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(page)
}

// MarkRead marks a notification as read
// Endpoint: PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	notificationID := c.Params("id")
	if notificationID == "" {
		return errors.HandleValidationError(c, "notification id is required")
	}

	if err := h.notificationService.MarkRead(c.Context(), notificationID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

// Delete removes a notification record
// Endpoint: DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	notificationID := c.Params("id")
	if notificationID == "" {
		return errors.HandleValidationError(c, "notification id is required")
	}

	if err := h.notificationService.Delete(c.Context(), notificationID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notification deleted successfully",
	})
}

// Announce sends a system announcement
// Endpoint: POST /notifications/announce
func (h *NotificationHandler) Announce(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	admin, ok := authjwt.FromContext(c)
	if !ok {
		return errors.HandleAdminContextError(c)
	}

	result, err := h.notificationService.Announce(c.Context(), admin.ID, req.Subject, req.Content, req.Audience)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(result)
}
