package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docmanage/internal/http/middleware"
	"docmanage/internal/service"
)

// errorResponse is the uniform error envelope for domain and transport
// failures.
type errorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	RequestID  string `json:"request_id,omitempty"`
}

// fieldError is one entry of a validation failure's details list.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationResponse is the envelope for malformed request shapes. Unlike
// errorResponse it carries a details list and always maps to 422.
type validationResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Details []fieldError `json:"details"`
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

// writeError writes the uniform JSON error envelope.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{
		Success:    false,
		Error:      message,
		StatusCode: status,
		RequestID:  requestIDFromCtx(c),
	})
}

// writeValidationError writes a 422 with the offending fields.
func writeValidationError(c *fiber.Ctx, details []fieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse{
		Success: false,
		Error:   "Validation Error",
		Details: details,
	})
}

// writeServiceError translates a domain error raised by the service layer
// into the envelope. Unknown errors become an opaque 500 so internals never
// leak to the caller.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidFileType):
		return writeError(c, fiber.StatusBadRequest, "Invalid file type")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusBadRequest, "File too large")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrInvalidStatus):
		return writeError(c, fiber.StatusBadRequest, "Status must be 'approved' or 'rejected'")
	case errors.Is(err, service.ErrInvalidDate):
		return writeError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	case errors.Is(err, service.ErrNotDocumentOwner):
		return writeError(c, fiber.StatusForbidden, "Not allowed to access this document")
	default:
		return writeError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses, including the 401/403 raised by the auth middleware.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			switch fe.Code {
			case fiber.StatusNotFound:
				msg = "Resource not found"
			case fiber.StatusMethodNotAllowed:
				msg = "Method not allowed"
			case fiber.StatusInternalServerError:
				msg = "Internal server error"
			}
			return writeError(c, fe.Code, msg)
		}
		return writeError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
