package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tasks-cli/internal/client"
	"tasks-cli/internal/config"
	"tasks-cli/internal/repository/sqlite"
	"tasks-cli/internal/services"
	"tasks-cli/internal/session"
	"tasks-cli/internal/toast"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	app    *App
	repo   sqlite.Repository
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "tasks",
		Short: "A command-line client for a shared task-tracking service",
		Long: `Tasks is a command-line client for a shared task-tracking service: sign in,
view tasks assigned across users and groups, create tasks with optional
deadlines and recurrence, and complete or delete tasks assigned to you.

EXAMPLES:
  tasks login alice                        # Sign in and store the API key
  tasks list                               # Show the task board
  tasks add "Water the plants" --in 1d     # New task due a day from now
  tasks add "File report" --date 2026-09-30 --time 17:00 --recurring monthly
  tasks complete 42                        # Mark your task 42 complete
  tasks delete 42                          # Delete your task 42
  tasks watch                              # Live view with refresh + toasts
  tasks logout                             # Forget the stored API key

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TASKS_SERVER_URL                       Task service base URL (default: http://localhost:8080)
    TASKS_UTC_OFFSET_MINUTES               Fixed offset for deadline entry (default: 60)
    TASKS_DB_DIR                           Settings store directory (default: ~/.tasks)
    TASKS_DB_FILENAME                      Settings store filename (default: tasks.db)
    TASKS_TIME_DISPLAY_FORMAT              Deadline display format (default: 2006-01-02 15:04)
    TASKS_WATCH_INTERVAL                   Watch mode refresh interval (default: 30s)
    TASKS_APP_VERBOSE                      Enable verbose output (default: false)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyFlagOverrides(cmd); err != nil {
				return err
			}
			return root.initApp()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// ExecuteContext runs the root command under the given context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Close releases the settings store
func (r *RootCommand) Close() {
	if r.repo != nil {
		r.repo.Close()
	}
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("server", "", "Task service base URL (overrides TASKS_SERVER_URL)")
	flags.String("db-dir", "", "Settings store directory (overrides TASKS_DB_DIR)")
	flags.String("db-filename", "", "Settings store filename (overrides TASKS_DB_FILENAME)")
	flags.Duration("watch-interval", 0, "Watch mode refresh interval (overrides TASKS_WATCH_INTERVAL)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TASKS_APP_VERBOSE)")
}

// applyFlagOverrides folds changed flags into the configuration
func (r *RootCommand) applyFlagOverrides(cmd *cobra.Command) error {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("server") {
		v, _ := flags.GetString("server")
		overrides.ServerURL = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("watch-interval") {
		v, _ := flags.GetDuration("watch-interval")
		overrides.WatchInterval = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return r.config.Apply(overrides)
}

// initApp wires the settings store, session, API client, toast scheduler and
// sync service together once the configuration is final
func (r *RootCommand) initApp() error {
	dbPath, err := r.config.GetDatabasePath()
	if err != nil {
		return err
	}

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	r.repo = repo

	sess := session.New(repo)
	apiClient := client.New(r.config.Server.URL)
	scheduler := toast.New(NewToastPrinter(os.Stdout))
	svc := services.NewSyncService(sess, apiClient, scheduler, r.config.Offset())

	r.app = NewApp(svc, sess, scheduler, r.config)
	return nil
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	loginCmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in to the task service",
		Long:  "Exchange a username and password for an API key and store it for later commands.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewLoginCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewLogoutCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewWhoamiCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the task board",
		Long:  "Fetch and display all tasks with deadlines, recurring/overdue labels and assignees.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewListCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Create a new task",
		Long: `Create a new task. A deadline needs both --date and --time, or use --in to
derive the pair from a relative offset (5m, 10m, 30m, 1h, 1d, 1w, 1mo, 1y).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewAddCommand(r.app).Execute(cmd.Context(), args, addOpts)
		},
	}
	addCmd.Flags().StringVar(&addOpts.Notes, "notes", "", "Free-text notes")
	addCmd.Flags().StringVar(&addOpts.Date, "date", "", "Deadline date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addOpts.Time, "time", "", "Deadline time (HH:MM)")
	addCmd.Flags().StringVar(&addOpts.In, "in", "", "Relative deadline offset (e.g. 30m, 1w)")
	addCmd.Flags().StringVar(&addOpts.Recurring, "recurring", "", "Recurrence cadence (hourly, daily, weekly, monthly, yearly)")
	addCmd.Flags().StringVar(&addOpts.Group, "group", "", "Assigned group id")
	addCmd.Flags().StringVar(&addOpts.User, "user", "", "Assigned user id (defaults to you)")

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task complete",
		Long:  "Mark one of your tasks complete. Only the assigned user can complete a task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCompleteCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete one of your tasks. Only the assigned user can delete a task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDeleteCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Live task board view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewWatchCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, listCmd, addCmd, completeCmd, deleteCmd, watchCmd)
}
