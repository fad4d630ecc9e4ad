// Package appcontext provides the shared application context interface
// used by all commands. Commands depend on this interface rather than the
// concrete app so they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/pkg/census"
)

// Interface defines the application context that commands need.
// The App struct from cmd/censusbot/app implements it.
type Interface interface {
	// Index returns the census index, loading the configured CSV files on
	// first use. Later calls return the same index.
	Index() (*census.Index, error)

	// BotOptions returns the bot options derived from configuration:
	// identity, batch, census vintage, citations and matching settings.
	// Commands append their own (reporter, dry run, force).
	BotOptions() []censusbot.Option

	// ArticlesDir returns the configured directory of .wiki articles.
	ArticlesDir() string

	// ProgressFile returns the configured ledger path, empty for none.
	ProgressFile() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Quiet reports whether progress output should be suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
