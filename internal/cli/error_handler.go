package cli

import (
	"fmt"

	"tasks-cli/internal/errors"
	"tasks-cli/internal/validation"
)

// ErrorHandler decides what a command hands back to cobra after a failure.
// Outcomes that already reached the toast channel are swallowed so they are
// not reported twice; only local infrastructure failures propagate.
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle maps an operation failure to what the command should return.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	// Validation failures were already toasted
	if validation.IsValidationError(err) {
		return nil
	}

	if appErr, ok := errors.AsAppError(err); ok {
		switch appErr.Type {
		case errors.ErrorTypeStorage:
			return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
		default:
			// Server rejections, transport failures, permission and
			// not-found refusals all terminated in a toast
			return nil
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}
