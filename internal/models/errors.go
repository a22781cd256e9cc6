package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// FieldError describes a single invalid field in an inbound payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a field-indexed list of validation failures.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	return fmt.Sprintf("invalid input: %s: %s", e[0].Field, e[0].Message)
}

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Fields  FieldErrors `json:"fields,omitempty"`
}

// AppError is a custom application error carrying a stable code.
type AppError struct {
	Code    string
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewInvalidInputError(fields FieldErrors) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: "Invalid input",
		Fields:  fields,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewUniqueViolationError(message string) *AppError {
	return &AppError{
		Code:    "UNIQUE_VIOLATION",
		Message: message,
	}
}

func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: "Storage error",
		Err:     err,
	}
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Message: appErr.Message,
			Code:    appErr.Code,
			Fields:  appErr.Fields,
		}
	} else {
		response = ErrorResponse{
			Message: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
