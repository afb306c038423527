package cli

import (
	"context"
	"fmt"
	"strconv"
)

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute runs the complete command
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseTaskID(args)
	if err != nil {
		return err
	}

	// Prime the profile and task caches so the ownership check can run
	// before any mutation request is issued
	if err := c.app.svc.RefreshAll(ctx); err != nil {
		return c.app.errors.Handle("refresh tasks", err)
	}
	if c.app.svc.Profile() == nil {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	return c.app.errors.Handle("complete task", c.app.svc.CompleteTask(ctx, id))
}

// parseTaskID extracts the task id argument shared by complete and delete.
func parseTaskID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one task id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("task id must be a number, got %q", args[0])
	}
	return id, nil
}
