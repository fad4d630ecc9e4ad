package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/pkg/census"
	"github.com/scaledbot/censusbot/pkg/errors"
)

// Mock provides a mock implementation of Interface for testing.
// Plain fields are returned as-is; a nil IndexFunc reports a config error.
type Mock struct {
	IndexFunc  func() (*census.Index, error)
	Options    []censusbot.Option
	Articles   string
	Progress   string
	Format     string
	QuietMode  bool
	LoggerFunc func() *zerolog.Logger
}

// Index returns an index using the mock function.
func (m *Mock) Index() (*census.Index, error) {
	if m.IndexFunc != nil {
		return m.IndexFunc()
	}
	return nil, errors.NewConfigError("census", "no index configured", nil)
}

// BotOptions returns a copy of Options.
func (m *Mock) BotOptions() []censusbot.Option {
	return append([]censusbot.Option(nil), m.Options...)
}

// ArticlesDir returns Articles.
func (m *Mock) ArticlesDir() string {
	return m.Articles
}

// ProgressFile returns Progress.
func (m *Mock) ProgressFile() string {
	return m.Progress
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Quiet returns QuietMode.
func (m *Mock) Quiet() bool {
	return m.QuietMode
}

// Version returns "dev".
func (m *Mock) Version() string {
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}

var _ Interface = (*Mock)(nil)
