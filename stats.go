package censusbot

import (
	"maps"

	"github.com/scaledbot/censusbot/pkg/progress"
)

// Stats counts what happened to the titles a bot was given.
type Stats struct {
	Processed   int            `json:"processed" yaml:"processed"`
	Edited      int            `json:"edited" yaml:"edited"`
	Skipped     int            `json:"skipped" yaml:"skipped"`
	Failed      int            `json:"failed" yaml:"failed"`
	AlreadyDone int            `json:"already_done" yaml:"already_done"`
	Reasons     map[string]int `json:"reasons,omitempty" yaml:"reasons,omitempty"`
}

func newStats() Stats {
	return Stats{Reasons: make(map[string]int)}
}

func (s *Stats) record(o progress.Outcome) {
	s.Processed++
	switch o.Kind() {
	case progress.KindEdited:
		s.Edited++
	case progress.KindSkipped:
		s.Skipped++
		s.Reasons[o.Skipped]++
	case progress.KindError:
		s.Failed++
	}
}

func (s Stats) clone() Stats {
	s.Reasons = maps.Clone(s.Reasons)
	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	return s
}
