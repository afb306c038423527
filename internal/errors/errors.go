package errors

import (
	"errors"
	"fmt"
)

// GenericTransportMessage is shown to the user for any transport-level failure.
// The specific cause is logged, never displayed.
const GenericTransportMessage = "The request could not be completed. Please check your connection and try again."

// CodeIncompleteDeadline marks the "date without time" (or inverse) validation
// case, which is surfaced as a notice rather than a hard error.
const CodeIncompleteDeadline = "INCOMPLETE_DEADLINE"

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewIncompleteDeadlineError creates the validation notice raised when a
// deadline date is supplied without a time, or a time without a date.
func NewIncompleteDeadlineError() *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: "Due date must either be empty or include both date and time",
		Code:    CodeIncompleteDeadline,
		Context: make(map[string]interface{}),
	}
}

// NewServerRejectionError creates an error for a non-2xx response whose body
// carried a server-supplied message. The message is preserved verbatim.
func NewServerRejectionError(statusCode int, message string) *AppError {
	return &AppError{
		Type:    ErrorTypeServerRejection,
		Message: message,
		Code:    "SERVER_REJECTED",
		Context: map[string]interface{}{
			"status_code": statusCode,
		},
	}
}

// NewTransportError creates an error for a request that never completed or
// whose response could not be decoded.
func NewTransportError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: fmt.Sprintf("request failed: %s", operation),
		Code:    "TRANSPORT_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewStorageError creates a new local storage error
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewPermissionError creates a new permission error
func NewPermissionError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: fmt.Sprintf("permission denied for %s on %s", operation, resource),
		Code:    "PERMISSION_DENIED",
		Context: map[string]interface{}{
			"operation": operation,
			"resource":  resource,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeServerRejection:
			// The server message is shown verbatim
			return appErr.Message
		case ErrorTypeTransport:
			return GenericTransportMessage
		case ErrorTypeStorage:
			return "A local storage error occurred. Please try again."
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypePermission:
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypePermission:
			return false // user errors, not system errors
		case ErrorTypeServerRejection, ErrorTypeTransport, ErrorTypeStorage:
			return true
		default:
			return true
		}
	}
	return true
}
