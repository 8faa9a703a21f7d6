package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// Cart and invoice errors
var (
	// ErrInvalidAmount signals unparsable user-entered monetary text. Callers keep
	// the last valid value instead of treating the input as zero.
	ErrInvalidAmount = &AppError{Code: http.StatusUnprocessableEntity, Message: "Invalid amount"}

	ErrProductNotFound = &AppError{Code: http.StatusNotFound, Message: "Product not found"}
	ErrEmptyCart       = &AppError{Code: http.StatusUnprocessableEntity, Message: "Cart has no valid line items"}
	ErrMissingCustomer = &AppError{Code: http.StatusUnprocessableEntity, Message: "Customer name is required"}
	ErrInvoiceNotFound = &AppError{Code: http.StatusNotFound, Message: "Invoice not found"}

	// ErrDuplicateInvoiceNumber is the unique-index backstop for the
	// read-then-use numbering scheme; it should not occur with a single writer.
	ErrDuplicateInvoiceNumber = &AppError{Code: http.StatusConflict, Message: "Invoice number already exists"}

	ErrStorageUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Storage unavailable"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
