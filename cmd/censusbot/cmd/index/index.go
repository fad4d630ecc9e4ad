// Package index provides the index command, which loads the census tables
// and reports what was built from them.
package index

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/cmd/cmdutil"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	"github.com/scaledbot/censusbot/pkg/census"
)

// Flags holds the index command flags.
type Flags struct {
	Keys bool
}

// NewCommand creates the index command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "index",
		GroupID: "inspect",
		Short:   "Load the census tables and show index statistics",
		Long: `Index reads the decennial and estimate CSV files and prints how many
places were indexed, how many estimates were attached, and how many estimate
rows matched no decennial place. --keys lists every indexed place name.`,
		Example: `  censusbot index --primary-csv dec2020.csv --secondary-csv est2024.csv
  censusbot index --keys -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, err := app.Index()
			if err != nil {
				return err
			}

			formatter, format := cmdutil.Formatter(app)
			if flags.Keys {
				if format == output.FormatTable {
					return formatter.Format(cmd.OutOrStdout(), KeysTable(idx))
				}
				return formatter.Format(cmd.OutOrStdout(), idx.Keys())
			}
			if format == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), StatsTable(idx.Stats()))
			}
			return formatter.Format(cmd.OutOrStdout(), idx.Stats())
		},
	}

	cmd.Flags().BoolVar(&flags.Keys, "keys", false, "list indexed place names")

	return cmd
}

// StatsTable lays out build statistics with grouped counts.
func StatsTable(stats census.BuildStats) output.Data {
	p := message.NewPrinter(language.English)
	return output.Data{
		Headers: []string{"Statistic", "Count"},
		Rows: [][]string{
			{output.Header("records"), p.Sprintf("%d", stats.Records)},
			{output.Header("duplicates"), p.Sprintf("%d", stats.Duplicates)},
			{output.Header("estimates"), p.Sprintf("%d", stats.Estimates)},
			{output.Header("dropped_estimates"), p.Sprintf("%d", stats.DroppedEstimates)},
		},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
}

// KeysTable lists indexed place names with their records.
func KeysTable(idx *census.Index) output.Data {
	p := message.NewPrinter(language.English)
	data := output.Data{
		Headers:         []string{"Census Name", "GEO ID", "Population", "Estimate"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignRight, output.AlignRight},
	}
	for _, key := range idx.Keys() {
		rec, _ := idx.Lookup(key)
		estimate := ""
		if rec.HasEstimate() {
			estimate = p.Sprintf("%d", *rec.Estimate)
		}
		data.Rows = append(data.Rows, []string{key, rec.GeoID, p.Sprintf("%d", rec.Population), estimate})
	}
	return data
}
