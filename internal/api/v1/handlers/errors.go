package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pmflow/flow/internal/validation"
)

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInvalidID      = "Invalid id"
)

// Project error messages
const (
	ErrMsgProjNameRequired = "Project name is required"
	ErrMsgProjNotFound     = "Project not found"
	ErrMsgProjCreateFailed = "Failed to create project"
	ErrMsgProjListFailed   = "Failed to list projects"
	ErrMsgProjDeleteFailed = "Failed to delete project"
)

// Sprint error messages
const (
	ErrMsgSprintNameRequired    = "Sprint name is required"
	ErrMsgSprintProjectRequired = "Sprint project is required"
	ErrMsgSprintDatesRequired   = "Sprint start and end dates are required"
	ErrMsgSprintNotFound        = "Sprint not found"
	ErrMsgSprintCreateFailed    = "Failed to create sprint"
	ErrMsgSprintListFailed      = "Failed to list sprints"
	ErrMsgSprintUpdateFailed    = "Failed to update sprint"
	ErrMsgSprintDeleteFailed    = "Failed to delete sprint"
)

// Task error messages
const (
	ErrMsgTaskNameRequired    = "Task name is required"
	ErrMsgTaskProjectRequired = "Task project is required"
	ErrMsgTaskSprintRequired  = "Sprint id is required"
	ErrMsgTaskNotFound        = "Task not found"
	ErrMsgTaskCreateFailed    = "Failed to create task"
	ErrMsgTaskUpdateFailed    = "Failed to update task"
	ErrMsgTaskDeleteFailed    = "Failed to delete task"
)

// respondWithError sends an error response with the given status and message
func respondWithError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// respondServiceError maps a service error to an HTTP response: a validation
// rejection becomes 422 with its message verbatim, a missing record becomes
// 404, everything else 500 with the fallback message.
func respondServiceError(c *fiber.Ctx, err error, notFoundMsg, fallbackMsg string) error {
	if validation.IsValidationError(err) {
		return respondWithError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return respondWithError(c, fiber.StatusNotFound, notFoundMsg)
	}
	return respondWithError(c, fiber.StatusInternalServerError, fallbackMsg)
}
