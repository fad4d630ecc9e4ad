package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledbot/censusbot/pkg/census"
	pkgerrors "github.com/scaledbot/censusbot/pkg/errors"
)

const primaryCSV = "\"GEO_ID\",\"NAME\",\"P1_001N\"\n" +
	"\"Geography\",\"Geographic Area Name\",\"!!Total\"\n" +
	"\"1600000US1303440\",\"Athens city, Georgia\",\"127315\"\n" +
	"\"1600000US4023950\",\"Enid city, Garfield County, Oklahoma\",\"51308\"\n"

const secondaryCSV = "NAME,P1_001N\n" +
	"\"Athens city CBT, Georgia\",129000\n"

func writeCSVs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	primary := filepath.Join(dir, "dec.csv")
	secondary := filepath.Join(dir, "est.csv")
	require.NoError(t, os.WriteFile(primary, []byte(primaryCSV), 0o644))
	require.NoError(t, os.WriteFile(secondary, []byte(secondaryCSV), 0o644))
	return primary, secondary
}

func TestNew(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2026-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2026-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.Len(t, app.BotOptions(), 9)
}

func TestIndexLoadsOnce(t *testing.T) {
	primary, secondary := writeCSVs(t)
	app, err := New("dev", "", "", "")
	require.NoError(t, err)
	app.config.PrimaryCSV = primary
	app.config.SecondaryCSV = secondary

	var (
		wg      sync.WaitGroup
		indexes = make([]*census.Index, 8)
	)
	for i := range indexes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx, err := app.Index()
			assert.NoError(t, err)
			indexes[i] = idx
		}(i)
	}
	wg.Wait()

	for _, idx := range indexes[1:] {
		assert.Same(t, indexes[0], idx)
	}
	assert.Equal(t, census.BuildStats{Records: 2, Estimates: 1}, indexes[0].Stats())
}

func TestIndexRequiresPrimary(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(&Config{}))
	require.NoError(t, err)

	_, err = app.Index()
	var cfgErr *pkgerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestWithIndex(t *testing.T) {
	idx := census.Build(nil, nil)
	app, err := New("dev", "", "", "", WithIndex(idx))
	require.NoError(t, err)

	got, err := app.Index()
	require.NoError(t, err)
	assert.Same(t, idx, got)
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestExecuteVersion(t *testing.T) {
	app, err := New("1.2.3", "abc123", "2026-01-01", "test")
	require.NoError(t, err)

	out, err := execute(t, app, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "censusbot version 1.2.3")
	assert.Contains(t, out, "commit: abc123")

	out, err = execute(t, app, "--version")
	require.NoError(t, err)
	assert.Equal(t, "censusbot 1.2.3\n", out)
}

func TestExecuteIndexWithFlags(t *testing.T) {
	primary, secondary := writeCSVs(t)
	app, err := New("dev", "", "", "")
	require.NoError(t, err)

	out, err := execute(t, app,
		"index", "--primary-csv", primary, "--secondary-csv", secondary,
		"--format", "json", "--log-level", "error",
	)
	require.NoError(t, err)

	var stats census.BuildStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, primary, app.Config().PrimaryCSV)
	assert.Equal(t, "error", app.Logger().GetLevel().String())
}

func TestExecuteRejectsInvalidConfig(t *testing.T) {
	app, err := New("dev", "", "", "")
	require.NoError(t, err)

	t.Run("validation", func(t *testing.T) {
		t.Setenv("CENSUSBOT_FUZZY_THRESHOLD", "1.5")
		_, err := execute(t, app, "index")
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("format", func(t *testing.T) {
		_, err := execute(t, app, "index", "-o", "xml")
		assert.ErrorContains(t, err, "invalid format")
	})

	t.Run("version skips validation", func(t *testing.T) {
		t.Setenv("CENSUSBOT_BATCH", " ")
		_, err := execute(t, app, "version")
		assert.NoError(t, err)
	})
}
