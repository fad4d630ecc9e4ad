package census

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/scaledbot/censusbot/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primaryCSV = "\ufeff\"GEO_ID\",\"NAME\",\"P1_001N\"\n" +
	"\"Geography\",\"Geographic Area Name\",\"!!Total\"\n" +
	"\"1600000US1303440\",\"Athens city, Georgia\",\"127315\"\n" +
	"\"1600000US1303436\",\"Athens CDP, Georgia\",\"1200\"\n" +
	"\"1600000US2970000\",\"Springfield city, Greene County, Missouri\",\"169176\"\n"

const secondaryCSV = "NAME,P1_001N\n" +
	"\"Athens city CBT, Georgia\",129000\n" +
	"\"Unknown village, Ohio\",15\n"

func TestReadPrimary(t *testing.T) {
	rows, err := ReadPrimary(strings.NewReader(primaryCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, PrimaryRow{Name: "Athens city, Georgia", GeoID: "1600000US1303440", Population: 127315}, rows[0])
	assert.Equal(t, "Springfield city, Greene County, Missouri", rows[2].Name)
}

func TestReadSecondary(t *testing.T) {
	rows, err := ReadSecondary(strings.NewReader(secondaryCSV))
	require.NoError(t, err)
	assert.Equal(t, []SecondaryRow{
		{Name: "Athens city CBT, Georgia", Estimate: 129000},
		{Name: "Unknown village, Ohio", Estimate: 15},
	}, rows)
}

func TestReadErrors(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		_, err := ReadPrimary(strings.NewReader("NAME,P1_001N\nmeta,meta\n"))
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Message, "GEO_ID")
	})

	t.Run("bad population", func(t *testing.T) {
		_, err := ReadSecondary(strings.NewReader("NAME,P1_001N\nA,1\nB,many\n"))
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 3, parseErr.Line)
		assert.Contains(t, parseErr.Message, `"B"`)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ReadSecondary(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		rows, err := ReadPrimary(strings.NewReader("NAME,GEO_ID,P1_001N\n"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "census_latest.csv")
	secondary := filepath.Join(dir, "census_est.csv")
	require.NoError(t, os.WriteFile(primary, []byte(primaryCSV), 0644))
	require.NoError(t, os.WriteFile(secondary, []byte(secondaryCSV), 0644))

	idx, err := LoadFiles(primary, secondary)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, BuildStats{Records: 3, Estimates: 1, DroppedEstimates: 1}, idx.Stats())

	t.Run("without estimates", func(t *testing.T) {
		idx, err := LoadFiles(primary, "")
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Stats().Estimates)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFiles(filepath.Join(dir, "nope.csv"), "")
		var ioErr *pkgerrors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("parse error names file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.csv")
		require.NoError(t, os.WriteFile(bad, []byte("NAME\n"), 0644))
		_, err := LoadFiles(primary, bad)
		var parseErr *pkgerrors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, bad, parseErr.File)
	})
}
