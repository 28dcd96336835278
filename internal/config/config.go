// Package config loads ubench CLI settings from flags, UBENCH_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. UBENCH_ITERATION.
const EnvPrefix = "UBENCH"

// Keys.
const (
	KeyIteration   = "iteration"
	KeyStep        = "step"
	KeyWarmup      = "warmup"
	KeyCPU         = "cpu"
	KeyFormat      = "format"
	KeyHistory     = "history"
	KeyLabel       = "label"
	KeyMetricsFile = "metrics_file"
	KeyLogLevel    = "log_level"
	KeyThreshold   = "threshold"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatBenchfmt = "benchfmt"
	FormatJSON     = "json"
)

// Settings is the resolved CLI configuration.
type Settings struct {
	Iteration   int
	Step        int
	Warmup      bool
	CPU         int // -1: do not pin
	Format      string
	History     string // JSON history file; empty disables saving
	Label       string
	MetricsFile string // Prometheus textfile; empty disables export
	LogLevel    string
	Threshold   float64 // regression threshold in percent
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyIteration, 10000)
	v.SetDefault(KeyStep, 20)
	v.SetDefault(KeyWarmup, true)
	v.SetDefault(KeyCPU, -1)
	v.SetDefault(KeyFormat, FormatMarkdown)
	v.SetDefault(KeyHistory, "")
	v.SetDefault(KeyLabel, "")
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyThreshold, 10.0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads cfgFile, or ubench.yaml from the working directory when
// cfgFile is empty, and resolves the settings. A missing default file is
// not an error; a missing explicit file is.
func Load(v *viper.Viper, cfgFile string) (Settings, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("ubench")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Iteration:   v.GetInt(KeyIteration),
		Step:        v.GetInt(KeyStep),
		Warmup:      v.GetBool(KeyWarmup),
		CPU:         v.GetInt(KeyCPU),
		Format:      strings.ToLower(v.GetString(KeyFormat)),
		History:     v.GetString(KeyHistory),
		Label:       v.GetString(KeyLabel),
		MetricsFile: v.GetString(KeyMetricsFile),
		LogLevel:    v.GetString(KeyLogLevel),
		Threshold:   v.GetFloat64(KeyThreshold),
	}
	return s, s.Validate()
}

// Validate checks ranges and the output format.
func (s Settings) Validate() error {
	if s.Step < 1 {
		return fmt.Errorf("%s must be positive, got %d", KeyStep, s.Step)
	}
	if s.Iteration < s.Step {
		return fmt.Errorf("%s (%d) must be >= %s (%d)", KeyIteration, s.Iteration, KeyStep, s.Step)
	}
	if s.CPU < -1 {
		return fmt.Errorf("%s must be -1 or a CPU index, got %d", KeyCPU, s.CPU)
	}
	switch s.Format {
	case FormatMarkdown, FormatBenchfmt, FormatJSON:
	default:
		return fmt.Errorf("unknown %s %q (want %s, %s or %s)", KeyFormat, s.Format, FormatMarkdown, FormatBenchfmt, FormatJSON)
	}
	if s.Threshold < 0 {
		return fmt.Errorf("%s must not be negative, got %g", KeyThreshold, s.Threshold)
	}
	return nil
}
