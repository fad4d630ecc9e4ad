// Package edits records the semantic changes made to an article and renders
// them as an edit summary.
package edits

import "slices"

// Task prefixes name the template a task belongs to.
const (
	PrefixPopulation = "ucp"
	PrefixInfobox    = "ibox"
)

// Task labels recorded by the planner.
const (
	TaskPopulationResult   = PrefixPopulation + ": +latest res"
	TaskPopulationEstimate = PrefixPopulation + ": +latest est"
	TaskPopulationOldEst   = PrefixPopulation + ": -old est"
	TaskInfoboxResult      = PrefixInfobox + ": +latest res"
	TaskInfoboxEstimate    = PrefixInfobox + ": +latest est"
	TaskInfoboxOldEst      = PrefixInfobox + ": -old est"
)

// Matched returns the lead label naming the census record an article was matched to.
func Matched(key string) string {
	return "Matched " + key
}

// Log is an ordered list of task labels. The zero value is ready to use.
type Log struct {
	labels []string
}

// NewLog returns a log seeded with labels.
func NewLog(labels ...string) *Log {
	return &Log{labels: slices.Clone(labels)}
}

// Add appends a label.
func (l *Log) Add(label string) {
	l.labels = append(l.labels, label)
}

// Retract removes every occurrence of label. Retracting a label that was
// never added is a no-op.
func (l *Log) Retract(label string) {
	l.labels = slices.DeleteFunc(l.labels, func(s string) bool { return s == label })
}

// Labels returns a copy of the labels in order.
func (l *Log) Labels() []string {
	return slices.Clone(l.labels)
}
