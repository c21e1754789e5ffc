// SPDX-License-Identifier: MIT
// Package config holds the fio command-line configuration.
//
// Sources, lowest precedence first:
//   - Default() values registered through SetDefaults.
//   - An optional YAML file (fio.yaml in the working directory or
//     $HOME/.config/fio, or the path passed with --config).
//   - FIO_* environment variables; dots become underscores, so log.level is
//     read from FIO_LOG_LEVEL.
//   - Command flags bound by cmd/fio.
//
// Load unmarshals the merged view and validates it, reporting every invalid
// field at once.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "FIO"

// Config keys, shared by SetDefaults and the flag bindings in cmd/fio.
const (
	KeyThreads       = "threads"
	KeyEpsilon       = "epsilon"
	KeyFormat        = "format"
	KeyRankOne       = "rank_one"
	KeySkipInfluence = "skip_influence"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
)

// Report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Config is the merged fio configuration.
type Config struct {
	// Threads caps the worker pool; 0 means one worker per CPU.
	Threads int `mapstructure:"threads"`
	// Epsilon is the perturbation used by the field of influence.
	Epsilon float64 `mapstructure:"epsilon"`
	// Format selects the report renderer: json, yaml or text.
	Format string `mapstructure:"format"`
	// RankOne switches extraction and influence to Sherman–Morrison updates.
	RankOne bool `mapstructure:"rank_one"`
	// SkipInfluence omits the field of influence from the report.
	SkipInfluence bool      `mapstructure:"skip_influence"`
	Log           LogConfig `mapstructure:"log"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Threads: 0,
		Epsilon: 1e-3,
		Format:  FormatText,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// SetDefaults registers Default() on v so that every key is known to
// Unmarshal and to AutomaticEnv even without a config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyThreads, d.Threads)
	v.SetDefault(KeyEpsilon, d.Epsilon)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyRankOne, d.RankOne)
	v.SetDefault(KeySkipInfluence, d.SkipInfluence)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
}

// Init prepares v: defaults, env binding and the config file search path.
// A missing config file is not an error; a malformed one is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("fio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/fio")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", describe(cfgFile), err)
	}

	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ValidFormats lists the accepted report formats.
func ValidFormats() []string { return []string{FormatJSON, FormatYAML, FormatText} }

// ValidLogLevels lists the accepted log levels.
func ValidLogLevels() []string { return []string{"debug", "info", "warn", "error"} }

// ValidLogFormats lists the accepted log formats.
func ValidLogFormats() []string { return []string{"json", "text"} }

// Validate returns every invalid field of c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	if c.Threads < 0 {
		errs = append(errs, ValidationError{Field: KeyThreads, Value: c.Threads, Message: "must be >= 0"})
	}
	if !(c.Epsilon > 0) {
		errs = append(errs, ValidationError{Field: KeyEpsilon, Value: c.Epsilon, Message: "must be > 0"})
	}
	if !slices.Contains(ValidFormats(), strings.ToLower(c.Format)) {
		errs = append(errs, ValidationError{
			Field: KeyFormat, Value: c.Format,
			Message: "must be one of " + strings.Join(ValidFormats(), ", "),
		})
	}
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field: KeyLogLevel, Value: c.Log.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Log.Format)) {
		errs = append(errs, ValidationError{
			Field: KeyLogFormat, Value: c.Log.Format,
			Message: "must be one of " + strings.Join(ValidLogFormats(), ", "),
		})
	}

	return errs
}

func describe(cfgFile string) string {
	if cfgFile == "" {
		return "config file"
	}

	return cfgFile
}
