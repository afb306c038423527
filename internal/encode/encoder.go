// Package encode validates and encodes the add-task form into the wire
// payload consumed by task creation.
//
// Deadline entry follows the absolute policy: the operator supplies an
// explicit date and time, both or neither. The pair is interpreted under a
// fixed UTC offset. Relative offsets ("now + 1w") are a front-end
// convenience layered on top by the CLI, which resolves them to an absolute
// pair before the form reaches this package.
package encode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tasks-cli/internal/client"
	"tasks-cli/internal/domain"
	"tasks-cli/internal/errors"
	"tasks-cli/internal/timeutil"
	"tasks-cli/internal/validation"
)

// TaskForm holds the raw user-entered fields of the add-task form.
type TaskForm struct {
	Description   string
	Notes         string
	Date          string // YYYY-MM-DD, optional
	Time          string // HH:MM, optional
	Recurring     string // cadence label or zero-based index, optional
	AssignedGroup string // group id, optional
	AssignedUser  string // user id, defaults to the signed-in profile
}

// Encoder turns a TaskForm into a TaskPayload, rejecting invalid input
// before any request is built.
type Encoder struct {
	validator *validation.TaskFormValidator
	offset    *time.Location
}

// New creates an encoder interpreting deadlines under the given fixed offset.
func New(offset *time.Location) *Encoder {
	return &Encoder{
		validator: validation.NewTaskFormValidator(),
		offset:    offset,
	}
}

// Encode validates the form and produces the creation payload. Format
// violations and an incomplete date/time pair are returned as errors; no
// payload is produced in that case. A form without date and time encodes a
// deadline of 0, meaning "no deadline".
func (e *Encoder) Encode(form TaskForm, profile *domain.UserProfile) (*client.TaskPayload, error) {
	if err := e.validator.ValidateDescription(form.Description); err != nil {
		return nil, err
	}

	if err := e.validator.ValidateDeadlineShape(form.Date, form.Time); err != nil {
		return nil, err
	}

	if !e.validator.IsDeadlinePairComplete(form.Date, form.Time) {
		return nil, errors.NewIncompleteDeadlineError()
	}

	deadline := domain.NoDeadline
	if form.Date != "" {
		combined, err := timeutil.Combine(form.Date, form.Time, e.offset)
		if err != nil {
			return nil, err
		}
		deadline = combined
	}

	recurring, err := e.encodeRecurring(form.Recurring)
	if err != nil {
		return nil, err
	}

	group, err := e.encodeGroup(form.AssignedGroup)
	if err != nil {
		return nil, err
	}

	user, err := e.encodeUser(form.AssignedUser, profile)
	if err != nil {
		return nil, err
	}

	return &client.TaskPayload{
		Description:       strings.TrimSpace(form.Description),
		Notes:             form.Notes,
		Deadline:          deadline,
		RecurringInterval: recurring,
		AssignedGroup:     group,
		AssignedUser:      user,
	}, nil
}

// encodeRecurring maps a cadence selection to the zero-based index into the
// fixed enumeration, or nil when no recurrence was selected. Both the label
// ("weekly") and the bare index ("2") are accepted.
func (e *Encoder) encodeRecurring(selection string) (*int, error) {
	if selection == "" {
		return nil, nil
	}
	if index, ok := domain.ParseRecurringInterval(selection); ok {
		return &index, nil
	}
	if index, err := strconv.Atoi(selection); err == nil {
		if domain.RecurringIntervalLabel(index) != "" {
			return &index, nil
		}
	}
	return nil, errors.NewValidationError(
		fmt.Sprintf("Recurring interval must be one of: %s", strings.Join(domain.RecurringIntervals, ", ")), nil)
}

// encodeGroup maps the group selection to an id, or nil when unselected.
func (e *Encoder) encodeGroup(selection string) (*int64, error) {
	if selection == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(selection, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError("Assigned group must be a numeric id", err)
	}
	return &id, nil
}

// encodeUser maps the user selection to an id. The assigned user is always a
// concrete id, defaulting to the signed-in profile when nothing was chosen.
func (e *Encoder) encodeUser(selection string, profile *domain.UserProfile) (int64, error) {
	if selection == "" {
		if profile == nil {
			return 0, errors.NewValidationError("No assigned user: sign in or pass a user id", nil)
		}
		return profile.ID, nil
	}
	id, err := strconv.ParseInt(selection, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("Assigned user must be a numeric id", err)
	}
	return id, nil
}
