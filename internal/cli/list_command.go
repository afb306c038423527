package cli

import (
	"context"
	"fmt"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.svc.RefreshAll(ctx); err != nil {
		return c.app.errors.Handle("refresh tasks", err)
	}

	if c.app.svc.Profile() == nil {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	c.app.renderTasks(c.app.out)
	return nil
}
