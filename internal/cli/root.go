package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"timegate/internal/api"
	"timegate/internal/config"
)

// commandTimeout bounds every non-serving command.
const commandTimeout = 30 * time.Second

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(apiInstance api.API, cfg *config.Config) *RootCommand {
	root := &RootCommand{app: NewApp(apiInstance, cfg)}

	root.cmd = &cobra.Command{
		Use:   "timegate",
		Short: "Timesheet tracking with business-rule validation",
		Long: `Timegate tracks working time against customers, projects and
activities, and guards every change with a configurable rule set:
overlap detection, lockdown periods, budget ceilings and more.

EXAMPLES:
  timegate start alice --project website --activity development
  timegate stop 7                       # Finish entry 7 now
  timegate list alice --running         # Show alice's active entries
  timegate check candidate.yaml         # Validate an entry without saving
  timegate budget project 3             # Budget statistic of one project
  timegate serve                        # Run the HTTP API

CONFIGURATION:
  Settings are read from defaults, then an optional YAML file, then
  TG_* environment variables (see timegate serve --help).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addSubcommands()
	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start [user]",
		Short: "Start tracking a new entry",
		Long:  "Start a running timesheet entry for the given user. The entry is validated before it is saved.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			handler := NewStartCommand(r.app)
			handler.Activity, _ = cmd.Flags().GetString("activity")
			handler.Project, _ = cmd.Flags().GetString("project")
			handler.Description, _ = cmd.Flags().GetString("description")
			handler.Tags, _ = cmd.Flags().GetStringSlice("tags")
			handler.Billable, _ = cmd.Flags().GetBool("billable")
			return handler.Execute(ctx, args)
		},
	}
	startCmd.Flags().String("activity", "", "Activity name")
	startCmd.Flags().String("project", "", "Project name")
	startCmd.Flags().String("description", "", "Entry description")
	startCmd.Flags().StringSlice("tags", nil, "Comma-separated tags")
	startCmd.Flags().Bool("billable", true, "Mark the entry billable")

	stopCmd := &cobra.Command{
		Use:   "stop [id]",
		Short: "Stop a running entry",
		Long:  "Finish the running entry with the given id now.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewStopCommand(r.app).Execute(ctx, args)
		},
	}

	restartCmd := &cobra.Command{
		Use:   "restart [id]",
		Short: "Restart a previous entry",
		Long:  "Start a fresh running copy of an existing entry: same user, scope, description and tags.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewRestartCommand(r.app).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [user]",
		Short: "List timesheet entries",
		Long: `List entries, optionally filtered to one user.

Examples:
  timegate list                  # All entries
  timegate list alice            # Entries of one user
  timegate list alice --running  # Only active entries`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			handler := NewListCommand(r.app)
			handler.Running, _ = cmd.Flags().GetBool("running")
			return handler.Execute(ctx, args)
		},
	}
	listCmd.Flags().Bool("running", false, "Only running entries")

	checkCmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a candidate entry without saving",
		Long: `Run the full rule set against a YAML-described entry and print
every violation. Nothing is written to the database.

The file references scopes by name:

  user: alice
  project: website
  activity: development
  begin: 2024-03-15T09:00:00Z
  end: 2024-03-15T11:30:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewCheckCommand(r.app).Execute(ctx, args)
		},
	}

	budgetCmd := &cobra.Command{
		Use:   "budget [scope] [id]",
		Short: "Show the budget statistic of a scope",
		Long:  "Print time and money consumption of an activity, project or customer against its configured budgets.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()
			return NewBudgetCommand(r.app).Execute(ctx, args)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  "Serve the REST API until interrupted. The listen address comes from the server section of the configuration (TG_SERVER_ADDR).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context())
		},
	}

	r.cmd.AddCommand(startCmd, stopCmd, restartCmd, listCmd, checkCmd, budgetCmd, serveCmd)
}
