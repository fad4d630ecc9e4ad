package edits

import (
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
)

const delimiter = ": "

// Summary renders tasks as one line. The first task is kept verbatim and the
// rest are grouped by the prefix before their first ": ", in first-seen order:
//
//	Matched Athens city, Georgia; ucp: (+latest res, +latest est); ibox: (+latest res)
//
// A task without a delimiter forms its own group with no actions.
func Summary(tasks []string) string {
	if len(tasks) == 0 {
		return ""
	}

	var order []string
	actions := make(map[string][]string)
	for _, task := range tasks[1:] {
		prefix, action, ok := strings.Cut(task, delimiter)
		if _, seen := actions[prefix]; !seen {
			order = append(order, prefix)
			actions[prefix] = nil
		}
		if ok {
			actions[prefix] = append(actions[prefix], action)
		}
	}

	var b strings.Builder
	b.WriteString(tasks[0])
	for _, prefix := range order {
		b.WriteString("; ")
		b.WriteString(prefix)
		if acts := actions[prefix]; len(acts) > 0 {
			b.WriteString(delimiter)
			b.WriteString("(")
			b.WriteString(strings.Join(acts, ", "))
			b.WriteString(")")
		}
	}
	return b.String()
}

// Comment is the edit comment saved with the article.
func Comment(tasks []string) string {
	return constants.SummaryLead + Summary(tasks)
}
