package cli

import (
	"context"
	"fmt"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}

	if err := c.app.svc.RefreshAll(ctx); err != nil {
		return c.app.errors.Handle("refresh tasks", err)
	}
	if c.app.svc.Profile() == nil {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	return c.app.errors.Handle("delete task", c.app.svc.DeleteTask(ctx, id))
}
