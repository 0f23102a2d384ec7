package handler

import (
	"github.com/gofiber/fiber/v2"

	"docintake/internal/http/middleware"
	"docintake/internal/validation"
)

// errorPayload is the standardized error response body. Message is the
// human-readable summary every failure carries; Errors lists per-field detail
// for form validation failures.
type errorPayload struct {
	Message   string                  `json:"message"`
	Code      string                  `json:"code,omitempty"`
	RequestID string                  `json:"request_id,omitempty"`
	Errors    []validation.FieldError `json:"errors,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking
// internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Message:   message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
	})
}

// writeFieldErrors is writeError plus the per-field violation list.
func writeFieldErrors(c *fiber.Ctx, status int, code, message string, fields []validation.FieldError) error {
	return c.Status(status).JSON(errorPayload{
		Message:   message,
		Code:      code,
		RequestID: requestIDFromCtx(c),
		Errors:    fields,
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for failures that escape the route handlers.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "PROCESSING_FAILED", "processing failed")
		}
	}
}
