package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/scaledbot/censusbot/cmd/censusbot/cmd/index"
	"github.com/scaledbot/censusbot/cmd/censusbot/cmd/plan"
	"github.com/scaledbot/censusbot/cmd/censusbot/cmd/resolve"
	"github.com/scaledbot/censusbot/cmd/censusbot/cmd/run"
	"github.com/scaledbot/censusbot/cmd/censusbot/cmd/version"
	"github.com/scaledbot/censusbot/internal/cmd/output"
)

// Execute runs the censusbot CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "censusbot",
		Short:   "Update US place articles with census population figures",
		Version: a.version,
		Long: `Censusbot updates the population figures of United States place articles
from census tables.

It matches article titles to census places, checks bot-exclusion directives,
rewrites the population history template and the settlement infobox, and
records every outcome in a progress ledger so later runs pick up where the
last one stopped.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands:",
	})

	// Global flags. Values are read back through viper in setupCommand so
	// the environment and config file fill in whatever is not given here.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.censusbot.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("bot-name", "", "bot identity checked against {{bots}} and {{nobots}}")
	flags.String("batch", "", "batch identifier for the progress ledger")
	flags.String("primary-csv", "", "decennial census CSV (NAME, GEO_ID, P1_001N)")
	flags.String("secondary-csv", "", "population estimate CSV (NAME, P1_001N)")
	flags.String("articles-dir", "", "directory of <title>.wiki articles")
	flags.String("progress-file", "", "progress ledger (.json, .yaml or .yml)")

	rootCmd.SetVersionTemplate("censusbot {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads configuration
// with the parsed flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	config, err := LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(config.Format); err != nil {
		return err
	}
	if cmd.Name() != "version" {
		if err := config.Validate(); err != nil {
			return err
		}
	}
	a.config = config

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(run.NewCommand(a))
	rootCmd.AddCommand(plan.NewCommand(a))

	// Inspection commands
	rootCmd.AddCommand(resolve.NewCommand(a))
	rootCmd.AddCommand(index.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
