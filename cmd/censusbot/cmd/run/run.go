// Package run provides the run command, which processes article titles.
package run

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/cmd/cmdutil"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	"github.com/scaledbot/censusbot/internal/matcher"
)

// Flags holds the run command flags.
type Flags struct {
	TitlesFile string
	Include    []string
	Exclude    []string
	DryRun     bool
	Force      bool
}

// NewCommand creates the run command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "run [titles...]",
		GroupID: "core",
		Short:   "Update articles with census figures",
		Long: `Run resolves each title to a census place, checks the article and updates
its population templates. Titles come from the arguments, from --titles-file,
or, when neither is given, from every article in the articles directory.

Titles already recorded in the progress ledger for the current batch are
skipped unless --force is given.`,
		Example: `  censusbot run "Athens, Georgia"
  censusbot run --titles-file titles.txt --progress-file progress.json
  censusbot run --include "*, Ohio" --exclude "^Middletown" --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, app, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.TitlesFile, "titles-file", "", "file with one title per line (- for stdin)")
	cmd.Flags().StringArrayVar(&flags.Include, "include", nil, "only process titles matching these glob or regex patterns")
	cmd.Flags().StringArrayVar(&flags.Exclude, "exclude", nil, "skip titles matching these glob or regex patterns")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "plan edits without saving articles or the ledger")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "process titles the ledger already marks done")

	return cmd
}

func execute(cmd *cobra.Command, app appcontext.Interface, flags *Flags, args []string) error {
	logger := app.Logger()

	dir, err := cmdutil.OpenArticles(app)
	if err != nil {
		return err
	}

	titles := append([]string(nil), args...)
	if flags.TitlesFile != "" {
		fromFile, err := cmdutil.ReadTitles(flags.TitlesFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		titles = append(titles, fromFile...)
	}
	if len(titles) == 0 {
		if titles, err = dir.Titles(); err != nil {
			return err
		}
	}

	filter, err := matcher.NewFilter(flags.Include, flags.Exclude)
	if err != nil {
		return err
	}
	titles = filter.Apply(cmdutil.Dedupe(titles))

	reporter, err := cmdutil.OpenReporter(app)
	if err != nil {
		return err
	}

	bot, err := cmdutil.NewBot(app, dir,
		censusbot.WithReporter(reporter),
		censusbot.WithDryRun(flags.DryRun),
		censusbot.WithForce(flags.Force),
	)
	if err != nil {
		return err
	}
	if !app.Quiet() {
		cmdutil.Progress(bot, cmd.ErrOrStderr())
	}

	logger.Info().
		Int("titles", len(titles)).
		Str("batch", bot.Batch()).
		Bool("dry_run", flags.DryRun).
		Msg("Starting run")

	stats, runErr := bot.Run(cmd.Context(), titles)

	formatter, format := cmdutil.Formatter(app)
	var data any = stats
	if format == output.FormatTable {
		data = StatsTable(stats)
	}
	if err := formatter.Format(cmd.OutOrStdout(), data); err != nil {
		return err
	}
	return runErr
}

// StatsTable lays out run counters with one row per skip reason.
func StatsTable(stats censusbot.Stats) output.Data {
	rows := [][]string{
		{"Processed", strconv.Itoa(stats.Processed)},
		{"Edited", strconv.Itoa(stats.Edited)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
		{"Failed", strconv.Itoa(stats.Failed)},
		{"Already Done", strconv.Itoa(stats.AlreadyDone)},
	}

	reasons := make([]string, 0, len(stats.Reasons))
	for reason := range stats.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		rows = append(rows, []string{"  " + reason, strconv.Itoa(stats.Reasons[reason])})
	}

	return output.Data{
		Headers:         []string{"Outcome", "Count"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
}
