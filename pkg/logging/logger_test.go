package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/scaledbot/censusbot/pkg/logging"
)

func TestLoggerFunctions(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	original := *logging.Default()
	defer func() {
		zerolog.SetGlobalLevel(originalLevel)
		logging.SetDefault(original)
	}()

	t.Run("SetDefault sets global logger", func(t *testing.T) {
		var buf bytes.Buffer
		logging.SetDefault(zerolog.New(&buf).Level(zerolog.InfoLevel))
		logging.Default().Info().Msg("test with new default")
		assert.Contains(t, buf.String(), "test with new default")
	})

	t.Run("OrNop tolerates nil", func(t *testing.T) {
		logger := logging.OrNop(nil)
		assert.NotNil(t, logger)
		logger.Info().Msg("discarded")

		var buf bytes.Buffer
		real := zerolog.New(&buf)
		assert.Same(t, &real, logging.OrNop(&real))
	})
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Msg("first")
	tl.Warn().Msg("second")

	assert.Len(t, tl.Lines(), 2)
	tl.AssertContains(t, "second")
	tl.AssertNotContains(t, "third")
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Default().Warn().Str("title", "Athens, Georgia").Msg("captured")
	tl.AssertContains(t, "captured")
}
