package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tasks-cli/internal/config"
	"tasks-cli/internal/domain"
	"tasks-cli/internal/services"
	"tasks-cli/internal/session"
	"tasks-cli/internal/timeutil"
	"tasks-cli/internal/toast"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	svc     services.SyncService
	session *session.Session
	toasts  *toast.Scheduler
	config  *config.Config
	errors  *ErrorHandler
	out     io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(svc services.SyncService, sess *session.Session, toasts *toast.Scheduler, cfg *config.Config) *App {
	return &App{
		svc:     svc,
		session: sess,
		toasts:  toasts,
		config:  cfg,
		errors:  NewErrorHandler(),
		out:     os.Stdout,
	}
}

// NewToastPrinter returns a scheduler change hook that renders freshly shown
// toasts to w. Countdown decrements are not re-printed; the watch command
// renders the live countdown itself.
func NewToastPrinter(w io.Writer) func(*domain.Toast) {
	return func(t *domain.Toast) {
		if t == nil || t.ClosingInSeconds != toast.ClosingSeconds {
			return
		}
		fmt.Fprintf(w, "[%s] %s\n", t.Type, t.Message)
	}
}

// renderTasks prints the cached task list the way the task board shows it:
// count, completion state, deadline with recurring/overdue labels, assignee
// name resolved through the users cache, and notes on their own line.
func (a *App) renderTasks(w io.Writer) {
	tasks := a.svc.Tasks()
	users := a.svc.Users()
	now := timeNow()

	fmt.Fprintf(w, "Your tasks (%d)\n", len(tasks))
	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}

		line := fmt.Sprintf("[%s] %4d  %s", mark, task.ID, task.Description)
		if task.HasDeadline() {
			line += fmt.Sprintf("  due %s", task.DeadlineTime().In(a.config.Offset()).Format(a.config.Display.TimeFormat))
			if labels := taskLabels(task, now); len(labels) > 0 {
				line += fmt.Sprintf("  (%s)", strings.Join(labels, ", "))
			}
		}
		if name := domain.FindName(users, task.AssignedUser); name != "" {
			line += fmt.Sprintf("  assigned to %s", name)
		}
		if a.svc.CanModify(task) {
			line += "  *"
		}
		fmt.Fprintln(w, line)

		if task.Notes != "" {
			fmt.Fprintf(w, "         notes: %s\n", task.Notes)
		}
	}
}

// taskLabels returns the badge labels shown next to a deadline.
func taskLabels(task domain.Task, now time.Time) []string {
	var labels []string
	if task.IsRecurring() {
		labels = append(labels, "Recurring")
	}
	if task.IsOverdue(now) {
		labels = append(labels, "Overdue")
	}
	return labels
}

// resolveRelativeDeadline turns a relative offset label into the absolute
// date/time pair the encoder's policy expects, interpreted under the
// configured fixed offset.
func (a *App) resolveRelativeDeadline(label string) (date string, timeOfDay string, err error) {
	offset, ok := timeutil.ParseOffset(label)
	if !ok {
		return "", "", fmt.Errorf("unknown offset %q, expected one of: %s",
			label, strings.Join(timeutil.OffsetLabels(), ", "))
	}
	deadline := timeutil.AddToDate(timeNow(), offset.Amount, offset.Unit).In(a.config.Offset())
	return deadline.Format("2006-01-02"), deadline.Format("15:04"), nil
}
