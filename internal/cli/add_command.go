package cli

import (
	"context"
	"strings"

	"tasks-cli/internal/encode"
)

// AddOptions holds the flag values of the add command.
type AddOptions struct {
	Notes     string
	Date      string
	Time      string
	In        string // relative offset label, resolved to a date/time pair
	Recurring string
	Group     string
	User      string
}

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string, opts AddOptions) error {
	form := encode.TaskForm{
		Description:   strings.Join(args, " "),
		Notes:         opts.Notes,
		Date:          opts.Date,
		Time:          opts.Time,
		Recurring:     opts.Recurring,
		AssignedGroup: opts.Group,
		AssignedUser:  opts.User,
	}

	if opts.In != "" {
		date, timeOfDay, err := c.app.resolveRelativeDeadline(opts.In)
		if err != nil {
			return err
		}
		form.Date = date
		form.Time = timeOfDay
	}

	// The profile supplies the default assignee
	if err := c.app.svc.RefreshProfile(ctx); err != nil {
		return c.app.errors.Handle("fetch profile", err)
	}

	return c.app.errors.Handle("create task", c.app.svc.CreateTask(ctx, form))
}
