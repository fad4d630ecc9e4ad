// Package planner decides which population fields to change in an article.
//
// Two templates are maintained: {{US Census population}}, the population
// history table, and {{Infobox settlement}}. Each is edited only when the
// article contains exactly one instance of it. Planning mutates the parsed
// document in place; the caller serializes it when Plan reports a change.
package planner

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/edits"
	"github.com/scaledbot/censusbot/pkg/logging"
	"github.com/scaledbot/censusbot/pkg/wikitext"
)

// TemplateState reports what happened to one template kind.
type TemplateState string

// Template states.
const (
	StateAbsent    TemplateState = "absent"
	StateAmbiguous TemplateState = "ambiguous"
	StateApplied   TemplateState = "applied"
)

// Plan is the result of planning one article.
type Plan struct {
	// Tasks are the change labels in the order they were made.
	Tasks      []string      `json:"tasks" yaml:"tasks"`
	Modified   bool          `json:"modified" yaml:"modified"`
	Population TemplateState `json:"population" yaml:"population"`
	Infobox    TemplateState `json:"infobox" yaml:"infobox"`
}

// Planner applies census records to parsed articles.
type Planner struct {
	cfg     Config
	year    string
	printer *message.Printer
	logger  *zerolog.Logger
}

// New creates a Planner. Zero fields of cfg are left as given; start from
// DefaultConfig to override selectively.
func New(cfg Config) *Planner {
	return &Planner{
		cfg:     cfg,
		year:    strconv.Itoa(cfg.CensusYear),
		printer: message.NewPrinter(language.English),
		logger:  logging.OrNop(cfg.Logger),
	}
}

// Config returns the planner configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

// WithLogger returns a copy of p that logs to logger.
func (p *Planner) WithLogger(logger *zerolog.Logger) *Planner {
	cp := *p
	cp.logger = logging.OrNop(logger)
	return &cp
}

// Plan updates the templates in doc from rec. Templates are visited in
// document order so the task order follows the article.
func (p *Planner) Plan(rec census.Record, doc *wikitext.Document) Plan {
	population := doc.Filter(constants.TemplatePopulation)
	infobox := doc.Filter(constants.TemplateInfobox)

	plan := Plan{
		Population: stateFor(len(population)),
		Infobox:    stateFor(len(infobox)),
	}
	if plan.Population == StateAmbiguous {
		p.logger.Debug().Int("count", len(population)).Msg("Several population templates, leaving them untouched")
	}
	if plan.Infobox == StateAmbiguous {
		p.logger.Debug().Int("count", len(infobox)).Msg("Several infoboxes, leaving them untouched")
	}

	var log edits.Log
	for _, tpl := range doc.Templates() {
		switch {
		case plan.Population == StateApplied && tpl == population[0]:
			plan.Modified = p.planPopulation(rec, tpl, &log) || plan.Modified
		case plan.Infobox == StateApplied && tpl == infobox[0]:
			plan.Modified = p.planInfobox(rec, tpl, &log) || plan.Modified
		}
	}

	plan.Tasks = log.Labels()
	return plan
}

func stateFor(count int) TemplateState {
	switch count {
	case 0:
		return StateAbsent
	case 1:
		return StateApplied
	default:
		return StateAmbiguous
	}
}

// group formats n with thousands separators, e.g. 127,315.
func (p *Planner) group(n int) string {
	return p.printer.Sprintf("%d", n)
}

// integer parses a field value such as "2,015" that is made only of digits
// and commas.
func integer(value string) (int, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if !digits(value) {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	return n, err == nil
}

// firstNumber returns the first whitespace-separated token of value that is
// made only of digits. "July 1, 2019" yields 2019.
func firstNumber(value string) (int, bool) {
	for _, tok := range strings.Fields(value) {
		if digits(tok) {
			n, err := strconv.Atoi(tok)
			return n, err == nil
		}
	}
	return 0, false
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
