package cli

import (
	"context"
	"fmt"
	"strings"
)

const notSignedInMessage = "Not signed in. Run 'tasks login' first."

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	if !c.app.session.Authenticated(ctx) {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	if err := c.app.svc.RefreshProfile(ctx); err != nil {
		return c.app.errors.Handle("fetch profile", err)
	}

	profile := c.app.svc.Profile()
	if profile == nil {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	fmt.Fprintf(c.app.out, "Signed in as %s (%s)\n", profile.Username, profile.Name)
	if len(profile.Groups) > 0 {
		fmt.Fprintf(c.app.out, "Groups: %s\n", strings.Join(profile.Groups, ", "))
	}
	return nil
}
