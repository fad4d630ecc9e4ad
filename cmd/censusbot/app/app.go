// Package app provides the application context and dependency management
// for the censusbot CLI. It centralizes configuration, logging, and the
// lazily loaded census index that every command shares.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/errors"
)

// App represents the censusbot application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Census index (lazy-initialized, singleton)
	mu    sync.RWMutex
	index *census.Index
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config file here and
// reloaded with command-line flags once cobra has parsed them.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig(nil)
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether -q was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// ArticlesDir returns the configured articles directory.
func (a *App) ArticlesDir() string {
	return a.config.ArticlesDir
}

// ProgressFile returns the configured ledger path.
func (a *App) ProgressFile() string {
	return a.config.ProgressFile
}

// Index returns the census index, loading it on first use.
// This is thread-safe and ensures the CSV files are read once.
func (a *App) Index() (*census.Index, error) {
	a.mu.RLock()
	if a.index != nil {
		idx := a.index
		a.mu.RUnlock()
		return idx, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.index != nil {
		return a.index, nil
	}

	if a.config.PrimaryCSV == "" {
		return nil, errors.NewConfigError("census", "primary_csv is required (--primary-csv or CENSUSBOT_PRIMARY_CSV)", nil)
	}

	idx, err := census.LoadFiles(a.config.PrimaryCSV, a.config.SecondaryCSV)
	if err != nil {
		return nil, err
	}

	stats := idx.Stats()
	a.logger.Debug().
		Str("primary", a.config.PrimaryCSV).
		Str("secondary", a.config.SecondaryCSV).
		Int("records", stats.Records).
		Int("estimates", stats.Estimates).
		Int("dropped_estimates", stats.DroppedEstimates).
		Msg("Loaded census index")

	a.index = idx
	return idx, nil
}

// BotOptions constructs bot options from the app configuration.
func (a *App) BotOptions() []censusbot.Option {
	return []censusbot.Option{
		censusbot.WithBotName(a.config.BotName),
		censusbot.WithBatch(a.config.Batch),
		censusbot.WithCensusYear(a.config.CensusYear),
		censusbot.WithEstimateYear(a.config.EstimateYear),
		censusbot.WithCitations(a.config.CensusRef, a.config.EstimateRef),
		censusbot.WithFuzzyThreshold(a.config.FuzzyThreshold),
		censusbot.WithDesignators(a.config.DesignatorSuffixes()...),
		censusbot.WithStrictDisambiguation(a.config.StrictDisambiguation),
		censusbot.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithIndex sets a prebuilt census index (useful for testing).
func WithIndex(idx *census.Index) Option {
	return func(a *App) error {
		a.index = idx
		return nil
	}
}

var _ appcontext.Interface = (*App)(nil)
