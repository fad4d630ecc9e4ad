package resolve

import "strings"

// Normalize drops the county from a "place, county, state" title. Any other
// title is returned trimmed.
func Normalize(title string) string {
	parts := strings.Split(title, ",")
	if len(parts) == 3 {
		return strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[2])
	}
	return strings.TrimSpace(title)
}

// suffixed returns the keys formed by adding each designator to the place
// segment of title, in designator order.
func suffixed(title string, designators []string) []string {
	place, rest, hasRest := strings.Cut(title, ", ")
	out := make([]string, 0, len(designators))
	for _, d := range designators {
		key := place + d
		if hasRest {
			key += ", " + rest
		}
		out = append(out, key)
	}
	return out
}
