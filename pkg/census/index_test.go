package census

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"county collapsed", "Springfield city, Greene County, Missouri", "Springfield city, Missouri"},
		{"county case-insensitive", "Ada, Ada COUNTY, Oklahoma", "Ada, Oklahoma"},
		{"non-county middle kept", "Juneau, City and Borough, Alaska", "Juneau, City and Borough, Alaska"},
		{"two parts", " Athens city, Georgia ", "Athens city, Georgia"},
		{"four parts", "a, b County, c, d", "a, b County, c, d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrimaryKey(tt.in))
		})
	}
}

func TestSecondaryKey(t *testing.T) {
	assert.Equal(t, "Athens city, Georgia", SecondaryKey("Athens city CBT, Georgia"))
	assert.Equal(t, "Athens city, Georgia", SecondaryKey("Athens city, Georgia"))
}

func TestBuild(t *testing.T) {
	idx := Build(
		[]PrimaryRow{
			{Name: "Athens city, Georgia", GeoID: "1600000US1303440", Population: 127315},
			{Name: "Athens CDP, Georgia", GeoID: "1600000US1303436", Population: 1200},
			{Name: "Springfield city, Greene County, Missouri", GeoID: "1600000US2970000", Population: 169176},
		},
		[]SecondaryRow{
			{Name: "Athens city CBT, Georgia", Estimate: 129000},
			{Name: "Nowhere town, Kansas", Estimate: 10},
		},
	)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{
		"Athens CDP, Georgia",
		"Athens city, Georgia",
		"Springfield city, Missouri",
	}, idx.Keys())

	rec, ok := idx.Lookup("Athens city, Georgia")
	require.True(t, ok)
	assert.Equal(t, "1600000US1303440", rec.GeoID)
	assert.Equal(t, 127315, rec.Population)
	require.True(t, rec.HasEstimate())
	assert.Equal(t, 129000, *rec.Estimate)

	rec, ok = idx.Lookup("Springfield city, Missouri")
	require.True(t, ok)
	assert.False(t, rec.HasEstimate())

	_, ok = idx.Lookup("Nowhere town, Kansas")
	assert.False(t, ok)

	assert.Equal(t, BuildStats{Records: 3, Estimates: 1, DroppedEstimates: 1}, idx.Stats())
}

func TestIndexImmutable(t *testing.T) {
	idx := Build(
		[]PrimaryRow{{Name: "A, B", GeoID: "1", Population: 1}},
		[]SecondaryRow{{Name: "A, B", Estimate: 2}},
	)

	rec, _ := idx.Lookup("A, B")
	*rec.Estimate = 99
	keys := idx.Keys()
	keys[0] = "mutated"

	again, _ := idx.Lookup("A, B")
	assert.Equal(t, 2, *again.Estimate)
	assert.Equal(t, []string{"A, B"}, idx.Keys())
}

func TestBuildDuplicateLastWins(t *testing.T) {
	idx := Build([]PrimaryRow{
		{Name: "Ada, Pontotoc County, Oklahoma", GeoID: "1", Population: 1},
		{Name: "Ada, Oklahoma", GeoID: "2", Population: 2},
	}, nil)

	rec, ok := idx.Lookup("Ada, Oklahoma")
	require.True(t, ok)
	assert.Equal(t, "2", rec.GeoID)
	assert.Equal(t, 1, idx.Stats().Duplicates)
}
