package cmdutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	pkgerrors "github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/progress"
)

func TestReadTitles(t *testing.T) {
	const list = "# first batch\nAthens, Georgia\n\n  Enid, Oklahoma  \n"
	want := []string{"Athens, Georgia", "Enid, Oklahoma"}

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "titles.txt")
		require.NoError(t, os.WriteFile(path, []byte(list), 0o644))
		got, err := ReadTitles(path, nil)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("stdin", func(t *testing.T) {
		got, err := ReadTitles("-", strings.NewReader(list))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadTitles(filepath.Join(t.TempDir(), "none.txt"), nil)
		var ioErr *pkgerrors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestOpenReporter(t *testing.T) {
	r, err := OpenReporter(&appcontext.Mock{})
	require.NoError(t, err)
	assert.IsType(t, &progress.Memory{}, r)

	path := filepath.Join(t.TempDir(), "progress.yaml")
	r, err = OpenReporter(&appcontext.Mock{Progress: path})
	require.NoError(t, err)
	file, ok := r.(*progress.File)
	require.True(t, ok)
	assert.Equal(t, path, file.Path())
}

func TestOpenArticles(t *testing.T) {
	_, err := OpenArticles(&appcontext.Mock{})
	var cfgErr *pkgerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	dir := t.TempDir()
	d, err := OpenArticles(&appcontext.Mock{Articles: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, d.Root())
}

func TestFormatter(t *testing.T) {
	f, format := Formatter(&appcontext.Mock{Format: "yaml"})
	assert.Equal(t, output.FormatYAML, format)
	assert.IsType(t, &output.YAMLFormatter{}, f)
}
