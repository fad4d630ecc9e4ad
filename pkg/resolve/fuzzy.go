package resolve

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// closest returns the single key whose similarity to title is at least
// threshold. Zero or several such keys is no match.
func closest(title string, keys []string, threshold float64) (string, float64, bool) {
	m := difflib.NewMatcher(nil, chars(title))

	var (
		best  string
		score float64
		hits  int
	)
	for _, key := range keys {
		m.SetSeq1(chars(key))
		if m.RealQuickRatio() < threshold || m.QuickRatio() < threshold {
			continue
		}
		ratio := m.Ratio()
		if ratio < threshold {
			continue
		}
		hits++
		if hits > 1 {
			return "", 0, false
		}
		best, score = key, ratio
	}
	return best, score, hits == 1
}

// Similarity is the difflib ratio between two strings, compared by character.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	return strings.Split(s, "")
}
