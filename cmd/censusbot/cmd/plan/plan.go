// Package plan provides the plan command, which previews the edit for one article.
package plan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/cmd/cmdutil"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/progress"
)

// Flags holds the plan command flags.
type Flags struct {
	File string
	Diff bool
}

// NewCommand creates the plan command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "plan <title>",
		GroupID: "core",
		Short:   "Preview the census edit for one article",
		Long: `Plan runs the full pipeline for one title without saving anything: the
title is resolved, the article is checked and the population templates are
rewritten in memory. The tasks and edit summary are printed, and --diff
shows the change as a unified diff.`,
		Example: `  censusbot plan "Athens, Georgia" --diff
  censusbot plan "Enid, Oklahoma" --file enid.wiki -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, app, flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.File, "file", "", "read the article from this file instead of the articles directory")
	cmd.Flags().BoolVar(&flags.Diff, "diff", false, "print a unified diff of the planned change")

	return cmd
}

// fileSource serves a single article from a file and refuses to save.
type fileSource struct {
	path string
}

func (f fileSource) Fetch(_ context.Context, _ string) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", errors.WrapIO("read", f.path, err)
	}
	return string(data), nil
}

func (f fileSource) Save(context.Context, string, string, string) error {
	return errors.New("plan never saves")
}

func execute(cmd *cobra.Command, app appcontext.Interface, flags *Flags, title string) error {
	var source censusbot.ArticleSource
	if flags.File != "" {
		source = fileSource{path: flags.File}
	} else {
		dir, err := cmdutil.OpenArticles(app)
		if err != nil {
			return err
		}
		source = dir
	}

	bot, err := cmdutil.NewBot(app, source,
		censusbot.WithReporter(progress.NewMemory()),
		censusbot.WithDryRun(true),
	)
	if err != nil {
		return err
	}

	res, err := bot.Process(cmd.Context(), title)
	if err != nil {
		return err
	}

	formatter, format := cmdutil.Formatter(app)
	if format != output.FormatTable {
		return formatter.Format(cmd.OutOrStdout(), res)
	}

	out := cmd.OutOrStdout()
	if err := formatter.Format(out, resultTable(res)); err != nil {
		return err
	}
	if flags.Diff && res.Text != "" {
		fmt.Fprintln(out)
		return writeDiff(out, res)
	}
	return nil
}

// resultTable summarizes a planned result.
func resultTable(res *censusbot.Result) output.Data {
	rows := [][]string{
		{"Title", res.Title},
		{"Census Name", res.Resolution.Key},
		{"Stage", string(res.Resolution.Stage)},
	}
	switch res.Outcome.Kind() {
	case progress.KindEdited:
		rows = append(rows,
			[]string{"Tasks", strings.Join(res.Outcome.Tasks, "\n")},
			[]string{"Summary", res.Summary},
		)
	case progress.KindSkipped:
		rows = append(rows, []string{"Skipped", res.Outcome.Skipped})
	case progress.KindError:
		rows = append(rows, []string{"Error", res.Outcome.Error})
	}
	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// writeDiff writes the planned change as a unified diff.
func writeDiff(w io.Writer, res *censusbot.Result) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(res.Original),
		B:        difflib.SplitLines(res.Text),
		FromFile: res.Title,
		ToFile:   res.Title + " (planned)",
		Context:  3,
	}
	return difflib.WriteUnifiedDiff(w, diff)
}
