package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scaledbot/censusbot/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("fields are attached to the context logger", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithTitle(ctx, "Springfield, Missouri")
		ctx = logging.WithBatch(ctx, "2")
		ctx = logging.WithCensusName(ctx, "Springfield city, Missouri")

		logging.Ctx(ctx).Info().Msg("planned")

		tl.AssertContains(t, `"title":"Springfield, Missouri"`)
		tl.AssertContains(t, `"batch":"2"`)
		tl.AssertContains(t, `"census_name":"Springfield city, Missouri"`)
	})
}
