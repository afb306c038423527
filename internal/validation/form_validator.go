package validation

import (
	"regexp"
	"strings"
)

// User-facing messages for deadline format violations.
const (
	DateFormatMessage = "Please format the date as YYYY-MM-DD"
	TimeFormatMessage = "Please format the time as HH:MM"
)

// Validator provides common validation utilities
type Validator struct {
	dateFormat *regexp.Regexp
	timeFormat *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		dateFormat: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		timeFormat: regexp.MustCompile(`^\d{2}:\d{2}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidDateShape checks a date string against the fixed YYYY-MM-DD digit pattern
func (v *Validator) IsValidDateShape(date string) bool {
	return v.dateFormat.MatchString(date)
}

// IsValidTimeShape checks a time string against the fixed HH:MM digit pattern
func (v *Validator) IsValidTimeShape(t string) bool {
	return v.timeFormat.MatchString(t)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskFormValidator validates the add-task form before anything is encoded
// or sent over the wire.
type TaskFormValidator struct {
	validator *Validator
}

// NewTaskFormValidator creates a new task form validator
func NewTaskFormValidator() *TaskFormValidator {
	return &TaskFormValidator{
		validator: NewValidator(),
	}
}

// ValidateDescription validates the task description field
func (tv *TaskFormValidator) ValidateDescription(description string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(description)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("description")
		return validationError
	}

	return nil
}

// ValidateDeadlineShape checks the date and time fields against their fixed
// digit patterns. Empty fields are not checked here; presence pairing is the
// encoder's concern.
func (tv *TaskFormValidator) ValidateDeadlineShape(date, timeOfDay string) error {
	validationError := NewValidationError()

	if date != "" && !tv.validator.IsValidDateShape(date) {
		validationError.AddInvalidFormatError("date", date, DateFormatMessage)
	}
	if timeOfDay != "" && !tv.validator.IsValidTimeShape(timeOfDay) {
		validationError.AddInvalidFormatError("time", timeOfDay, TimeFormatMessage)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// IsDeadlinePairComplete reports whether the date and time fields are either
// both present or both absent.
func (tv *TaskFormValidator) IsDeadlinePairComplete(date, timeOfDay string) bool {
	return (date == "") == (timeOfDay == "")
}
