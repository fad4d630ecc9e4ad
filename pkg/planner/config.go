package planner

import (
	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
)

// Config holds the census vintage and identity the planner writes with.
type Config struct {
	// BotName is checked against bot-exclusion directives
	BotName string
	// CensusYear is the decennial census year, e.g. 2020
	CensusYear int
	// EstimateYear is the vintage of the annual estimate
	EstimateYear int
	// CensusRef is written to the "<year>n" citation field
	CensusRef string
	// EstimateRef is written to estref
	EstimateRef string
	// Logger receives per-field decisions; nil disables logging
	Logger *zerolog.Logger
}

// DefaultConfig returns the configuration used by the census bot.
func DefaultConfig() Config {
	return Config{
		BotName:      constants.DefaultBotName,
		CensusYear:   constants.DefaultCensusYear,
		EstimateYear: constants.DefaultEstimateYear,
		CensusRef:    constants.DefaultCensusRef,
		EstimateRef:  constants.DefaultEstimateRef,
	}
}

// Validate checks that the years are usable.
func (c Config) Validate() error {
	if c.CensusYear <= 0 {
		return errors.NewValidationError("census_year", c.CensusYear, "must be positive")
	}
	if c.EstimateYear < c.CensusYear {
		return errors.NewValidationError("estimate_year", c.EstimateYear, "must not precede census_year")
	}
	return nil
}
