package cli

import (
	"context"
	"fmt"
	"time"
)

// WatchCommand handles the watch command: a resident view that re-fetches the
// task list on an interval and renders the live toast countdown, the CLI
// analogue of the open browser page.
type WatchCommand struct {
	app *App
}

// NewWatchCommand creates a new watch command handler
func NewWatchCommand(app *App) *WatchCommand {
	return &WatchCommand{app: app}
}

// Execute runs the watch command until the context is cancelled
func (c *WatchCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.svc.RefreshAll(ctx); err != nil {
		return c.app.errors.Handle("refresh tasks", err)
	}
	if c.app.svc.Profile() == nil {
		fmt.Fprintln(c.app.out, notSignedInMessage)
		return nil
	}

	interval := c.app.config.Application.WatchInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		c.render()

		select {
		case <-ctx.Done():
			fmt.Fprintln(c.app.out)
			return nil
		case <-ticker.C:
			if err := c.app.svc.RefreshAll(ctx); err != nil {
				// Already toasted; keep watching so a flaky network
				// does not kill the view
				continue
			}
		}
	}
}

func (c *WatchCommand) render() {
	fmt.Fprintf(c.app.out, "--- %s ---\n", timeNow().In(c.app.config.Offset()).Format(c.app.config.Display.TimeFormat))
	c.app.renderTasks(c.app.out)
	if t := c.app.toasts.Current(); t != nil {
		fmt.Fprintf(c.app.out, "[%s] %s (closing in %ds)\n", t.Type, t.Message, t.ClosingInSeconds)
	}
}
