package planner

import (
	"strconv"

	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/edits"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

var estimateFields = []string{constants.FieldEstYear, constants.FieldEstimate, constants.FieldEstRef}

// planPopulation updates the population history template. The census year
// field is written with its "<year>n" citation unless a different, cited
// count is already there.
func (p *Planner) planPopulation(rec census.Record, fs wikitext.FieldSet, log *edits.Log) bool {
	modified := false
	sourced := p.year + constants.SourcedSuffix

	current, has := fs.Get(p.year)
	n, numeric := integer(current)
	switch {
	case has && numeric && n == rec.Population:
		p.logger.Debug().Int("year", p.cfg.CensusYear).Msg("Census count is up to date")
	case has && fs.Has(sourced):
		p.logger.Info().
			Int("year", p.cfg.CensusYear).
			Str("current", current).
			Int("population", rec.Population).
			Msg("Census count differs but is sourced, leaving it")
	default:
		changed := fs.Set(p.year, strconv.Itoa(rec.Population))
		changed = fs.Set(sourced, p.cfg.CensusRef) || changed
		if changed {
			modified = true
			log.Add(edits.TaskPopulationResult)
		}
	}

	if v, ok := fs.Get(constants.FieldEstYear); ok {
		if year, ok := integer(v); ok && year <= p.cfg.CensusYear {
			p.logger.Debug().Int("estyear", year).Msg("Removing outdated estimate")
			for _, field := range estimateFields {
				fs.Remove(field)
			}
			modified = true
			log.Add(edits.TaskPopulationOldEst)
		}
	}

	if !rec.HasEstimate() {
		return modified
	}
	if v, ok := fs.Get(constants.FieldEstYear); ok {
		if year, ok := integer(v); ok && year >= p.cfg.EstimateYear {
			p.logger.Debug().Int("estyear", year).Msg("Estimate is current or newer")
			return modified
		}
	}

	changed := fs.Set(constants.FieldEstYear, strconv.Itoa(p.cfg.EstimateYear))
	changed = fs.Set(constants.FieldEstimate, strconv.Itoa(*rec.Estimate)) || changed
	changed = fs.Set(constants.FieldEstRef, p.cfg.EstimateRef) || changed
	if changed {
		modified = true
		log.Retract(edits.TaskPopulationOldEst)
		log.Add(edits.TaskPopulationEstimate)
	}
	return modified
}
