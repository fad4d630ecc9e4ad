// Package articles stores article wikitext as files in a directory, one
// "<title>.wiki" file per article.
package articles

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/logging"
)

// Extension is the file extension of article files.
const Extension = ".wiki"

// SummaryExtension is appended to an article file name for its edit log.
const SummaryExtension = ".summary"

var (
	escaper   = strings.NewReplacer("%", "%25", "/", "%2F")
	unescaper = strings.NewReplacer("%2F", "/", "%2f", "/", "%25", "%")
)

// Dir is an article source backed by a directory.
type Dir struct {
	root string
}

// NewDir returns a Dir rooted at root. The directory must exist.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapIO("stat", root, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("articles_dir", root, "not a directory")
	}
	return &Dir{root: root}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.root
}

// FileName returns the file name used for title.
func FileName(title string) string {
	return escaper.Replace(title) + Extension
}

// TitleOf returns the title stored in the file name, and false when name is
// not an article file.
func TitleOf(name string) (string, bool) {
	base, ok := strings.CutSuffix(name, Extension)
	if !ok || base == "" {
		return "", false
	}
	return unescaper.Replace(base), true
}

// Path returns the file path of title.
func (d *Dir) Path(title string) string {
	return filepath.Join(d.root, FileName(title))
}

// Titles lists every article in the directory, sorted.
func (d *Dir) Titles() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, errors.WrapIO("read", d.root, err)
	}

	var titles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if title, ok := TitleOf(entry.Name()); ok {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)
	return titles, nil
}

// Fetch reads the text of title.
func (d *Dir) Fetch(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := d.Path(title)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.NewNotFoundError("article", title)
	}
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	logging.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("Fetched article")
	return string(data), nil
}

// Save writes text for title and appends summary to the article's edit log.
func (d *Dir) Save(ctx context.Context, title, text, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := d.Path(title)
	if err := os.WriteFile(path, []byte(text), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logPath := path + SummaryExtension
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("open", logPath, err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(summary + "\n"); err != nil {
		return errors.WrapIO("write", logPath, err)
	}

	logging.Ctx(ctx).Debug().Str("path", path).Msg("Saved article")
	return nil
}
