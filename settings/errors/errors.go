// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Settings service specific errors
var (
	ErrAdminNotFound           = errors.New("admin not found")
	ErrInvalidCurrentPassword  = errors.New("current password is incorrect")
	ErrWeakPassword            = errors.New("password is not strong enough")
	ErrEmailAlreadyRegistered  = errors.New("email is already registered")
	ErrValidationFailed        = errors.New("validation failed")
	ErrDatabaseOperation       = errors.New("database operation failed")
)

// Error codes
const (
	CodeAdminNotFound          = "ADMIN_NOT_FOUND"
	CodeInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"
	CodeWeakPassword           = "WEAK_PASSWORD"
	CodeEmailExists            = "EMAIL_ALREADY_REGISTERED"
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeDatabaseError          = "DATABASE_ERROR"
	CodeUnauthorized           = "UNAUTHORIZED"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrAdminNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeAdminNotFound,
			Message: "Administrator not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidCurrentPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidCurrentPassword,
			Message: "Current password is incorrect",
		})
	case errors.Is(err, ErrWeakPassword):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeWeakPassword,
			Message: "Password is not strong enough!",
		})
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeEmailExists,
			Message: "An administrator with this email already exists",
		})
	case errors.Is(err, ErrValidationFailed):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeValidationFailed,
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
		Details: message,
	})
}

// HandleAdminContextError handles requests without an authenticated admin
func HandleAdminContextError(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    CodeUnauthorized,
		Message: "Missing admin context",
	})
}
