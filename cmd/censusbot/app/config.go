package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scaledbot/censusbot/pkg/constants"
	"github.com/scaledbot/censusbot/pkg/errors"
)

// EnvPrefix namespaces environment variables (CENSUSBOT_BOT_NAME, ...).
const EnvPrefix = "censusbot"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Bot configuration
	BotName              string
	Batch                string
	CensusYear           int
	EstimateYear         int
	CensusRef            string
	EstimateRef          string
	FuzzyThreshold       float64
	Designators          []string
	StrictDisambiguation bool

	// Inputs and outputs
	PrimaryCSV   string
	SecondaryCSV string
	ArticlesDir  string
	ProgressFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// flagKeys maps command-line flags to config keys. Flags left unset fall
// back to the environment and config file.
var flagKeys = map[string]string{
	"verbose":       "verbose",
	"quiet":         "quiet",
	"no-color":      "no_color",
	"format":        "format",
	"log-level":     "log_level",
	"bot-name":      "bot_name",
	"batch":         "batch",
	"primary-csv":   "primary_csv",
	"secondary-csv": "secondary_csv",
	"articles-dir":  "articles_dir",
	"progress-file": "progress_file",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (when flags is non-nil)
// 2. Environment variables (CENSUSBOT_ prefix)
// 3. .env files
// 4. Config file (--config, or .censusbot.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.NewConfigError("flags", "binding --"+name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".censusbot")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; an explicit or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		BotName:              v.GetString("bot_name"),
		Batch:                v.GetString("batch"),
		CensusYear:           v.GetInt("census_year"),
		EstimateYear:         v.GetInt("estimate_year"),
		CensusRef:            v.GetString("census_ref"),
		EstimateRef:          v.GetString("estimate_ref"),
		FuzzyThreshold:       v.GetFloat64("fuzzy_threshold"),
		Designators:          v.GetStringSlice("designators"),
		StrictDisambiguation: v.GetBool("strict_disambiguation"),

		PrimaryCSV:   v.GetString("primary_csv"),
		SecondaryCSV: v.GetString("secondary_csv"),
		ArticlesDir:  v.GetString("articles_dir"),
		ProgressFile: v.GetString("progress_file"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot_name", constants.DefaultBotName)
	v.SetDefault("batch", constants.DefaultBatch)
	v.SetDefault("census_year", constants.DefaultCensusYear)
	v.SetDefault("estimate_year", constants.DefaultEstimateYear)
	v.SetDefault("census_ref", constants.DefaultCensusRef)
	v.SetDefault("estimate_ref", constants.DefaultEstimateRef)
	v.SetDefault("fuzzy_threshold", constants.DefaultFuzzyThreshold)
	v.SetDefault("designators", DesignatorWords(constants.DefaultDesignators))
	v.SetDefault("strict_disambiguation", false)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// Validate checks the bot settings for values the pipeline cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotName) == "" {
		return errors.NewValidationError("bot_name", c.BotName, "cannot be empty")
	}
	if strings.TrimSpace(c.Batch) == "" {
		return errors.NewValidationError("batch", c.Batch, "cannot be empty")
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return errors.NewValidationError("fuzzy_threshold", c.FuzzyThreshold, "must be in (0, 1]")
	}
	if c.EstimateYear < c.CensusYear {
		return errors.NewValidationError("estimate_year", c.EstimateYear, "cannot precede census_year")
	}
	if len(c.Designators) == 0 {
		return errors.NewValidationError("designators", c.Designators, "at least one designator is required")
	}
	return nil
}

// DesignatorSuffixes turns configured designator words ("city") into the
// title suffixes the resolver appends (" city").
func (c *Config) DesignatorSuffixes() []string {
	out := make([]string, 0, len(c.Designators))
	for _, d := range c.Designators {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, " "+d)
		}
	}
	return out
}

// DesignatorWords strips the leading space from designator suffixes so they
// can be written in YAML or a whitespace-separated env var.
func DesignatorWords(suffixes []string) []string {
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are not overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
