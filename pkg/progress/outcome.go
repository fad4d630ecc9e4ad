// Package progress records what happened to each article so a run can be
// resumed without reprocessing titles.
//
// Outcomes are kept per title and per batch identifier. A title counts as
// done for a batch once a non-empty outcome has been reported for it.
package progress

// Kind classifies an Outcome.
type Kind string

// Outcome kinds.
const (
	KindNone    Kind = ""
	KindSkipped Kind = "skipped"
	KindError   Kind = "error"
	KindEdited  Kind = "edited"
)

// Outcome is the ledger entry for one title in one batch. Exactly one of
// Skipped, Error, or Tasks with CensusName is set.
type Outcome struct {
	Skipped    string   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Tasks      []string `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	CensusName string   `json:"census_name,omitempty" yaml:"census_name,omitempty"`
}

// Skipped is the outcome for an article left alone, with the reason.
func Skipped(reason string) Outcome {
	return Outcome{Skipped: reason}
}

// Failed is the outcome for an article whose fetch or save failed.
func Failed(message string) Outcome {
	return Outcome{Error: message}
}

// Edited is the outcome for a saved article.
func Edited(tasks []string, censusName string) Outcome {
	return Outcome{Tasks: append([]string(nil), tasks...), CensusName: censusName}
}

// Kind reports which variant o holds.
func (o Outcome) Kind() Kind {
	switch {
	case o.Skipped != "":
		return KindSkipped
	case o.Error != "":
		return KindError
	case len(o.Tasks) > 0 || o.CensusName != "":
		return KindEdited
	default:
		return KindNone
	}
}

// Empty reports whether o carries nothing.
func (o Outcome) Empty() bool {
	return o.Kind() == KindNone
}

// Reporter is the caller-owned ledger the pipeline reports to.
type Reporter interface {
	// Done reports whether title already has an outcome in batch.
	Done(title, batch string) bool
	// Report records the outcome of title in batch, replacing any earlier one.
	Report(title, batch string, o Outcome) error
}

// Ledger maps title to batch to outcome.
type Ledger map[string]map[string]Outcome

// Done reports whether title has a non-empty outcome in batch.
func (l Ledger) Done(title, batch string) bool {
	o, ok := l.Get(title, batch)
	return ok && !o.Empty()
}

// Get returns the outcome of title in batch.
func (l Ledger) Get(title, batch string) (Outcome, bool) {
	batches, ok := l[title]
	if !ok {
		return Outcome{}, false
	}
	o, ok := batches[batch]
	return o, ok
}

// Set records o for title in batch.
func (l Ledger) Set(title, batch string, o Outcome) {
	batches, ok := l[title]
	if !ok {
		batches = make(map[string]Outcome)
		l[title] = batches
	}
	batches[batch] = o
}

// Clone returns a deep copy of l.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for title, batches := range l {
		cp := make(map[string]Outcome, len(batches))
		for batch, o := range batches {
			o.Tasks = append([]string(nil), o.Tasks...)
			cp[batch] = o
		}
		out[title] = cp
	}
	return out
}
