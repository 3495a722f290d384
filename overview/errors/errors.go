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

// Overview service specific errors
var (
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeDatabaseError = "DATABASE_ERROR"
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

	if errors.Is(err, ErrDatabaseOperation) {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	}

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
		Details: err.Error(),
	})
}
