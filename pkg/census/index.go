// Package census builds the lookup index of place populations from the
// decennial count table and the annual estimate table.
package census

import (
	"sort"
	"strings"

	"github.com/scaledbot/censusbot/internal/utils/ptr"
	"github.com/scaledbot/censusbot/pkg/constants"
)

// Record is the census data for one place.
type Record struct {
	GeoID      string `json:"geo_id" yaml:"geo_id"`
	Population int    `json:"population" yaml:"population"`
	Estimate   *int   `json:"estimate,omitempty" yaml:"estimate,omitempty"`
}

// HasEstimate reports whether an annual estimate is attached.
func (r Record) HasEstimate() bool {
	return r.Estimate != nil
}

// PrimaryRow is one row of the decennial table.
type PrimaryRow struct {
	Name       string
	GeoID      string
	Population int
}

// SecondaryRow is one row of the estimate table.
type SecondaryRow struct {
	Name     string
	Estimate int
}

// BuildStats describes how the index was assembled.
type BuildStats struct {
	Records          int `json:"records" yaml:"records"`
	Duplicates       int `json:"duplicates" yaml:"duplicates"`
	Estimates        int `json:"estimates" yaml:"estimates"`
	DroppedEstimates int `json:"dropped_estimates" yaml:"dropped_estimates"`
}

// Index maps a canonical place name such as "Athens city, Georgia" to its
// Record. It is not modified after Build returns and is safe for concurrent reads.
type Index struct {
	records map[string]Record
	keys    []string
	stats   BuildStats
}

// Build merges the two tables. Primary names of the form
// "place, X County, state" are stored as "place, state". Estimate rows are
// attached by name with the table's " CBT" suffix removed; rows that match
// no primary record are dropped.
func Build(primary []PrimaryRow, secondary []SecondaryRow) *Index {
	idx := &Index{records: make(map[string]Record, len(primary))}

	for _, row := range primary {
		key := PrimaryKey(row.Name)
		if _, exists := idx.records[key]; exists {
			idx.stats.Duplicates++
		}
		idx.records[key] = Record{GeoID: row.GeoID, Population: row.Population}
	}

	for _, row := range secondary {
		key := SecondaryKey(row.Name)
		rec, ok := idx.records[key]
		if !ok {
			idx.stats.DroppedEstimates++
			continue
		}
		if rec.Estimate == nil {
			idx.stats.Estimates++
		}
		rec.Estimate = ptr.To(row.Estimate)
		idx.records[key] = rec
	}

	idx.keys = make([]string, 0, len(idx.records))
	for key := range idx.records {
		idx.keys = append(idx.keys, key)
	}
	sort.Strings(idx.keys)
	idx.stats.Records = len(idx.records)

	return idx
}

// PrimaryKey derives the index key for a decennial table name.
func PrimaryKey(name string) string {
	key := strings.TrimSpace(name)
	parts := strings.Split(key, ",")
	if len(parts) == 3 && strings.Contains(strings.ToLower(parts[1]), "county") {
		return strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[2])
	}
	return key
}

// SecondaryKey derives the index key for an estimate table name.
func SecondaryKey(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), constants.EstimateNameSuffix, "")
}

// Lookup returns the record stored under key.
func (idx *Index) Lookup(key string) (Record, bool) {
	rec, ok := idx.records[key]
	rec.Estimate = ptr.Clone(rec.Estimate)
	return rec, ok
}

// Contains reports whether key is present.
func (idx *Index) Contains(key string) bool {
	_, ok := idx.records[key]
	return ok
}

// Keys returns every key in sorted order.
func (idx *Index) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Stats returns the counts gathered while building.
func (idx *Index) Stats() BuildStats {
	return idx.stats
}
