package cli

import (
	"context"
	"fmt"
)

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.svc.SignOut(ctx); err != nil {
		return c.app.errors.Handle("sign out", err)
	}
	fmt.Fprintln(c.app.out, "Signed out.")
	return nil
}
