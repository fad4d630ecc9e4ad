package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
)

var _ Reporter = (*File)(nil)

// Format is the on-disk encoding of a ledger file.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension. Anything other than
// .yaml or .yml is JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// File is a Reporter persisted to disk. The whole ledger is rewritten
// atomically after every report.
type File struct {
	path   string
	format Format
	mu     sync.Mutex
	ledger Ledger
}

// Open loads the ledger at path. A missing file starts an empty ledger that
// is created on the first report.
func Open(path string) (*File, error) {
	f := &File{path: path, format: FormatFor(path), ledger: make(Ledger)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return f, nil
	}

	if err := f.unmarshal(data); err != nil {
		return nil, errors.WrapParse(string(f.format), path, err)
	}
	if f.ledger == nil {
		f.ledger = make(Ledger)
	}
	return f, nil
}

// Path returns the ledger file path.
func (f *File) Path() string {
	return f.path
}

// Done implements Reporter.
func (f *File) Done(title, batch string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger.Done(title, batch)
}

// Report implements Reporter.
func (f *File) Report(title, batch string, o Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ledger.Set(title, batch, o)
	return f.save()
}

// Ledger returns a copy of the loaded ledger.
func (f *File) Ledger() Ledger {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger.Clone()
}

func (f *File) unmarshal(data []byte) error {
	if f.format == FormatYAML {
		return yaml.Unmarshal(data, &f.ledger)
	}
	return json.Unmarshal(data, &f.ledger)
}

func (f *File) marshal() ([]byte, error) {
	if f.format == FormatYAML {
		return yaml.Marshal(f.ledger)
	}
	data, err := json.MarshalIndent(f.ledger, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (f *File) save() error {
	data, err := f.marshal()
	if err != nil {
		return errors.WrapParse(string(f.format), f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Chmod(constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return errors.WrapIO("rename", f.path, err)
	}
	committed = true
	return nil
}
