package censusbot

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/logging"
	"github.com/scaledbot/censusbot/pkg/progress"
)

// Option is a function that configures a Bot.
type Option func(*config) error

type config struct {
	botName        string
	batch          string
	censusYear     int
	estimateYear   int
	censusRef      string
	estimateRef    string
	fuzzyThreshold float64
	designators    []string
	strict         bool
	dryRun         bool
	force          bool
	reporter       progress.Reporter
	logger         *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		botName:        constants.DefaultBotName,
		batch:          constants.DefaultBatch,
		censusYear:     constants.DefaultCensusYear,
		estimateYear:   constants.DefaultEstimateYear,
		censusRef:      constants.DefaultCensusRef,
		estimateRef:    constants.DefaultEstimateRef,
		fuzzyThreshold: constants.DefaultFuzzyThreshold,
		designators:    slices.Clone(constants.DefaultDesignators),
		reporter:       progress.NewMemory(),
		logger:         logging.Default(),
	}
}

func (c *config) validate() error {
	if c.botName == "" {
		return errors.NewValidationError("bot_name", c.botName, "must not be empty")
	}
	if c.batch == "" {
		return errors.NewValidationError("batch", c.batch, "must not be empty")
	}
	if c.fuzzyThreshold <= 0 || c.fuzzyThreshold > 1 {
		return errors.NewValidationError("fuzzy_threshold", c.fuzzyThreshold, "must be in (0, 1]")
	}
	if c.censusYear <= 0 {
		return errors.NewValidationError("census_year", c.censusYear, "must be positive")
	}
	if c.estimateYear < c.censusYear {
		return errors.NewValidationError("estimate_year", c.estimateYear, "must not precede census_year")
	}
	return nil
}

// WithBotName sets the identity checked against bot-exclusion directives.
func WithBotName(name string) Option {
	return func(c *config) error {
		c.botName = name
		return nil
	}
}

// WithBatch sets the ledger batch outcomes are recorded under.
func WithBatch(batch string) Option {
	return func(c *config) error {
		c.batch = batch
		return nil
	}
}

// WithCensusYear sets the decennial census year written to articles.
func WithCensusYear(year int) Option {
	return func(c *config) error {
		c.censusYear = year
		return nil
	}
}

// WithEstimateYear sets the vintage of the annual estimates.
func WithEstimateYear(year int) Option {
	return func(c *config) error {
		c.estimateYear = year
		return nil
	}
}

// WithCitations sets the citations written next to the census count and the estimate.
// An empty string keeps the default.
func WithCitations(censusRef, estimateRef string) Option {
	return func(c *config) error {
		if censusRef != "" {
			c.censusRef = censusRef
		}
		if estimateRef != "" {
			c.estimateRef = estimateRef
		}
		return nil
	}
}

// WithFuzzyThreshold sets the minimum similarity for fuzzy title matches.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *config) error {
		c.fuzzyThreshold = threshold
		return nil
	}
}

// WithDesignators sets the place-type suffixes tried during resolution.
func WithDesignators(designators ...string) Option {
	return func(c *config) error {
		if len(designators) == 0 {
			return errors.NewValidationError("designators", designators, "at least one designator is required")
		}
		c.designators = slices.Clone(designators)
		return nil
	}
}

// WithStrictDisambiguation stops resolution when several suffixed names match
// and the article's FIPS code picks none of them.
func WithStrictDisambiguation(strict bool) Option {
	return func(c *config) error {
		c.strict = strict
		return nil
	}
}

// WithDryRun plans edits without saving articles or writing the ledger.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithForce processes titles even when the ledger marks them done.
func WithForce(enabled bool) Option {
	return func(c *config) error {
		c.force = enabled
		return nil
	}
}

// WithReporter sets the progress ledger. The default is an in-memory ledger.
func WithReporter(reporter progress.Reporter) Option {
	return func(c *config) error {
		if reporter == nil {
			return errors.NewValidationError("reporter", nil, "must not be nil")
		}
		c.reporter = reporter
		return nil
	}
}

// WithLogger sets the logger. The default is the package default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logging.OrNop(logger)
		return nil
	}
}
