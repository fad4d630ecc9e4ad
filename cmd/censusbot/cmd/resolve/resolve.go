// Package resolve provides the resolve command, which shows how a title maps
// onto the census index.
package resolve

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/cmd/cmdutil"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/resolve"
)

// NewCommand creates the resolve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <title>",
		GroupID: "inspect",
		Short:   "Show the census place a title resolves to",
		Long: `Resolve normalizes a title and looks it up in the census index, trying the
title itself, then each place designator, then fuzzy matching. When several
designators match and an articles directory is configured, the article's
FIPS code is used to pick one.`,
		Example: `  censusbot resolve "Athens, Georgia"
  censusbot resolve "Middletown, Ohio" -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, app, args[0])
		},
	}
}

// missingArticles is the source used when no articles directory is configured.
type missingArticles struct{}

func (missingArticles) Fetch(_ context.Context, title string) (string, error) {
	return "", errors.NewNotFoundError("article", title)
}

func (missingArticles) Save(context.Context, string, string, string) error {
	return errors.New("resolve never saves")
}

func execute(cmd *cobra.Command, app appcontext.Interface, title string) error {
	var (
		source censusbot.ArticleSource = missingArticles{}
		text   resolve.TextProvider
	)
	if app.ArticlesDir() != "" {
		dir, err := cmdutil.OpenArticles(app)
		if err != nil {
			return err
		}
		source = dir
		ctx := cmd.Context()
		text = resolve.Once(func() (string, error) {
			return dir.Fetch(ctx, title)
		})
	}

	bot, err := cmdutil.NewBot(app, source)
	if err != nil {
		return err
	}

	res, err := bot.Resolver().Resolve(title, text)
	if err != nil {
		return err
	}

	formatter, format := cmdutil.Formatter(app)
	if format != output.FormatTable {
		return formatter.Format(cmd.OutOrStdout(), res)
	}
	return formatter.Format(cmd.OutOrStdout(), ResolutionTable(res))
}

// ResolutionTable lays out a resolution as property rows, followed by one
// row per ambiguous candidate.
func ResolutionTable(res resolve.Resolution) output.Data {
	p := message.NewPrinter(language.English)

	rows := [][]string{
		{"Title", res.Title},
		{"Normalized", res.Normalized},
		{"Found", strconv.FormatBool(res.Found)},
	}
	if res.Found {
		rows = append(rows,
			[]string{"Census Name", res.Key},
			[]string{"Stage", string(res.Stage)},
		)
		rows = append(rows, recordRows(p, res.Record)...)
	}
	if res.FIPS != "" {
		rows = append(rows, []string{"FIPS", res.FIPS})
	}
	if res.Stage == resolve.StageFuzzy {
		rows = append(rows, []string{"Similarity", fmt.Sprintf("%.3f", res.Similarity)})
	}
	for _, c := range res.Candidates {
		rows = append(rows, []string{"Candidate", fmt.Sprintf("%s (%s)", c.Key, c.Record.GeoID)})
	}

	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

func recordRows(p *message.Printer, rec census.Record) [][]string {
	rows := [][]string{
		{"GEO ID", rec.GeoID},
		{"Population", p.Sprintf("%d", rec.Population)},
	}
	if rec.HasEstimate() {
		rows = append(rows, []string{"Estimate", p.Sprintf("%d", *rec.Estimate)})
	}
	return rows
}
