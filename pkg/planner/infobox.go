package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/edits"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// estimateAsOfFields are the accepted spellings of the estimate year field,
// preferred first.
var estimateAsOfFields = []string{constants.FieldPopulationEstAsOf, constants.FieldPopEstAsOf}

// planInfobox updates the settlement infobox totals and estimate.
func (p *Planner) planInfobox(rec census.Record, fs wikitext.FieldSet, log *edits.Log) bool {
	modified := false
	currentYear := p.cfg.CensusYear

	asOf, hasAsOf := fs.Get(constants.FieldPopulationAsOf)
	if hasAsOf && !strings.Contains(asOf, p.year) && fs.Has(constants.FieldPopulationTotal) {
		prior, ok := firstNumber(asOf)
		if ok && prior > p.cfg.CensusYear {
			p.logger.Debug().Int("as_of", prior).Msg("Infobox population is newer than the census")
			currentYear = prior
		} else {
			changed := fs.Set(constants.FieldPopulationAsOf, fmt.Sprintf("[[%s United States Census|%s]]", p.year, p.year))
			changed = fs.Set(constants.FieldPopulationTotal, p.group(rec.Population)) || changed
			if changed {
				modified = true
				log.Add(edits.TaskInfoboxResult)
			}
		}
	}

	asOfField := ""
	for _, field := range estimateAsOfFields {
		if fs.Has(field) {
			asOfField = field
			break
		}
	}

	estYear, hasEstYear := 0, false
	if asOfField != "" && fs.Has(constants.FieldPopulationEst) {
		v, _ := fs.Get(asOfField)
		estYear, hasEstYear = firstNumber(v)
		if hasEstYear && estYear < currentYear {
			p.logger.Debug().Int("est_as_of", estYear).Msg("Removing outdated infobox estimate")
			fs.Remove(constants.FieldPopulationEst)
			for _, field := range estimateAsOfFields {
				fs.Remove(field)
			}
			fs.Remove(constants.FieldPopulationEstNotes)
			modified = true
			log.Add(edits.TaskInfoboxOldEst)
		}
	}

	if !rec.HasEstimate() || (hasEstYear && estYear >= p.cfg.EstimateYear) {
		return modified
	}

	if asOfField == "" {
		asOfField = constants.FieldPopulationEstAsOf
	}
	changed := fs.Set(asOfField, strconv.Itoa(p.cfg.EstimateYear))
	changed = fs.Set(constants.FieldPopulationEst, p.group(*rec.Estimate)) || changed
	if changed {
		modified = true
		log.Retract(edits.TaskInfoboxOldEst)
		log.Add(edits.TaskInfoboxEstimate)
	}
	return modified
}
