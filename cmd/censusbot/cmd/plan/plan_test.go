package plan

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/articles"
	"github.com/scaledbot/censusbot/pkg/census"
)

const enid = `'''Enid''' is a city in Garfield County, Oklahoma, United States.
{{US Census population
|2010=49379
}}
`

func newApp(t *testing.T, format string) (*appcontext.Mock, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, articles.FileName("Enid, Oklahoma")), []byte(enid), 0o644))

	idx := census.Build([]census.PrimaryRow{
		{Name: "Enid city, Garfield County, Oklahoma", GeoID: "1600000US4023950", Population: 51308},
	}, nil)
	return &appcontext.Mock{
		IndexFunc: func() (*census.Index, error) { return idx, nil },
		Articles:  dir,
		Format:    format,
	}, dir
}

func runCommand(t *testing.T, app *appcontext.Mock, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanDiff(t *testing.T) {
	app, dir := newApp(t, "table")

	out, err := runCommand(t, app, "Enid, Oklahoma", "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "Enid city, Oklahoma")
	assert.Contains(t, out, "--- Enid, Oklahoma\n")
	assert.Contains(t, out, "+++ Enid, Oklahoma (planned)\n")
	assert.Contains(t, out, "+|2020=51308\n")

	data, err := os.ReadFile(filepath.Join(dir, articles.FileName("Enid, Oklahoma")))
	require.NoError(t, err)
	assert.Equal(t, enid, string(data), "plan must not save")
}

func TestPlanJSON(t *testing.T) {
	app, _ := newApp(t, "json")

	out, err := runCommand(t, app, "Enid, Oklahoma")
	require.NoError(t, err)

	var res struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Saved   bool   `json:"saved"`
		Outcome struct {
			Tasks      []string `json:"tasks"`
			CensusName string   `json:"census_name"`
		} `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Enid, Oklahoma", res.Title)
	assert.False(t, res.Saved)
	assert.Equal(t, "Enid city, Oklahoma", res.Outcome.CensusName)
	assert.Equal(t, "Matched Enid city, Oklahoma", res.Outcome.Tasks[0])
	assert.Contains(t, res.Summary, "Update census info: Matched Enid city, Oklahoma")
}

type planned struct {
	Title   string `json:"title"`
	Outcome struct {
		Skipped string `json:"skipped"`
		Error   string `json:"error"`
	} `json:"outcome"`
}

func TestPlanFromFile(t *testing.T) {
	app, _ := newApp(t, "json")
	app.Articles = ""
	file := filepath.Join(t.TempDir(), "enid.wiki")
	require.NoError(t, os.WriteFile(file, []byte("{{nobots}} Enid, United States {{US Census population|2010=1}}"), 0o644))

	out, err := runCommand(t, app, "Enid, Oklahoma", "--file", file)
	require.NoError(t, err)

	var res planned
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "bots not allowed", res.Outcome.Skipped)
}

func TestPlanMissingArticle(t *testing.T) {
	app, _ := newApp(t, "json")

	out, err := runCommand(t, app, "Enid, Oklahoma", "--file", filepath.Join(t.TempDir(), "missing.wiki"))
	require.NoError(t, err)

	var res planned
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.Outcome.Error, "failed to fetch Enid, Oklahoma")
}

func TestPlanRequiresTitle(t *testing.T) {
	app, _ := newApp(t, "json")
	_, err := runCommand(t, app)
	assert.Error(t, err)
}
