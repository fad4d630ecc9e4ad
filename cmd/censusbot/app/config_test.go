package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scaledbot/censusbot/pkg/constants"
	pkgerrors "github.com/scaledbot/censusbot/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultBotName, config.BotName)
	assert.Equal(t, constants.DefaultBatch, config.Batch)
	assert.Equal(t, constants.DefaultCensusYear, config.CensusYear)
	assert.Equal(t, constants.DefaultEstimateYear, config.EstimateYear)
	assert.Equal(t, constants.DefaultCensusRef, config.CensusRef)
	assert.InDelta(t, constants.DefaultFuzzyThreshold, config.FuzzyThreshold, 1e-9)
	assert.Equal(t, []string{"city", "town", "village", "township", "CDP"}, config.Designators)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("CENSUSBOT_BOT_NAME", "Testbot")
	t.Setenv("CENSUSBOT_BATCH", "7")
	t.Setenv("CENSUSBOT_FUZZY_THRESHOLD", "0.9")
	t.Setenv("CENSUSBOT_DESIGNATORS", "city CDP")
	t.Setenv("CENSUSBOT_STRICT_DISAMBIGUATION", "true")
	t.Setenv("CENSUSBOT_PRIMARY_CSV", "/data/dec.csv")

	config, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "Testbot", config.BotName)
	assert.Equal(t, "7", config.Batch)
	assert.InDelta(t, 0.9, config.FuzzyThreshold, 1e-9)
	assert.Equal(t, []string{"city", "CDP"}, config.Designators)
	assert.True(t, config.StrictDisambiguation)
	assert.Equal(t, "/data/dec.csv", config.PrimaryCSV)
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("bot-name", "", "")
	flags.String("batch", "", "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "censusbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`bot_name: Filebot
batch: "2"
estimate_year: 2025
designators: [city, town]
articles_dir: /srv/articles
`), 0o644))

	t.Run("file", func(t *testing.T) {
		config, err := LoadConfig(newFlagSet(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, path, config.ConfigFile)
		assert.Equal(t, "Filebot", config.BotName)
		assert.Equal(t, "2", config.Batch)
		assert.Equal(t, 2025, config.EstimateYear)
		assert.Equal(t, []string{"city", "town"}, config.Designators)
		assert.Equal(t, "/srv/articles", config.ArticlesDir)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("CENSUSBOT_BATCH", "3")
		config, err := LoadConfig(newFlagSet(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, "3", config.Batch)
	})

	t.Run("flags override env and file", func(t *testing.T) {
		t.Setenv("CENSUSBOT_BOT_NAME", "Envbot")
		config, err := LoadConfig(newFlagSet(t, "--config", path, "--bot-name", "Flagbot", "-v"))
		require.NoError(t, err)
		assert.Equal(t, "Flagbot", config.BotName)
		assert.True(t, config.Verbose)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(newFlagSet(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
		var cfgErr *pkgerrors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BotName:        "Scaledbot",
			Batch:          "1",
			CensusYear:     2020,
			EstimateYear:   2024,
			FuzzyThreshold: 0.95,
			Designators:    []string{"city"},
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{name: "valid"},
		{name: "threshold of one", modify: func(c *Config) { c.FuzzyThreshold = 1 }},
		{name: "estimate in census year", modify: func(c *Config) { c.EstimateYear = 2020 }},
		{name: "empty bot name", modify: func(c *Config) { c.BotName = " " }, field: "bot_name"},
		{name: "empty batch", modify: func(c *Config) { c.Batch = "" }, field: "batch"},
		{name: "zero threshold", modify: func(c *Config) { c.FuzzyThreshold = 0 }, field: "fuzzy_threshold"},
		{name: "threshold above one", modify: func(c *Config) { c.FuzzyThreshold = 1.5 }, field: "fuzzy_threshold"},
		{name: "estimate before census", modify: func(c *Config) { c.EstimateYear = 2019 }, field: "estimate_year"},
		{name: "no designators", modify: func(c *Config) { c.Designators = nil }, field: "designators"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			if tt.modify != nil {
				tt.modify(c)
			}
			err := c.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestDesignators(t *testing.T) {
	c := &Config{Designators: []string{"city", " ", "CDP "}}
	assert.Equal(t, []string{" city", " CDP"}, c.DesignatorSuffixes())
	assert.Equal(t, []string{"city", "town"}, DesignatorWords([]string{" city", " town"}))
}
