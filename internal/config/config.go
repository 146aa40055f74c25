// Package config loads meatmonitor settings from $MEATMONITOR_HOME/config.yaml,
// an optional overlay file and MEATMONITOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	outputTypeFile = "file"
)

// Output formats understood by the CLI.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const maxPrecision = 6

// ErrInvalidConfig is returned by Validate and Set.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of user settings.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset" json:"dataset"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	configPath string
}

// DatasetConfig selects the per-capita consumption table.
type DatasetConfig struct {
	// Path to a CSV file. Empty means the embedded sample dataset.
	Path           string `yaml:"path,omitempty"            json:"path,omitempty"            env:"MEATMONITOR_DATASET"`
	DefaultCountry string `yaml:"default_country,omitempty" json:"default_country,omitempty" env:"MEATMONITOR_COUNTRY"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" env:"MEATMONITOR_OUTPUT_FORMAT"`
	Precision     int    `yaml:"precision"      json:"precision"      env:"MEATMONITOR_OUTPUT_PRECISION"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"          env:"MEATMONITOR_LOG_LEVEL"`
	Format string `yaml:"format"         json:"format"         env:"MEATMONITOR_LOG_FORMAT"`
	File   string `yaml:"file,omitempty" json:"file,omitempty" env:"MEATMONITOR_LOG_FILE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New returns the defaults, overlaid with the config file when present and
// then with environment variables. Problems are logged and skipped so the
// CLI can still start with a broken config file.
func New() *Config {
	cfg := Default()

	dir, err := GetConfigDir()
	if err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		if loadErr := cfg.loadFile(cfg.configPath); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			Logger.Warn().Err(loadErr).Str("path", cfg.configPath).Msg("ignoring unreadable config file")
		}
	}

	if envErr := cfg.ApplyEnvOverrides(); envErr != nil {
		Logger.Warn().Err(envErr).Msg("ignoring invalid environment overrides")
	}
	return cfg
}

// Load reads path on top of the defaults. Environment variables are not applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides replaces fields whose MEATMONITOR_* variable is set.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Save writes the config to its path, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return err
		}
		c.configPath = filepath.Join(dir, configFileName)
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config as YAML to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: output.default_format %q must be table, json or ndjson",
			ErrInvalidConfig, c.Output.DefaultFormat)
	}

	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: output.precision %d must be between 0 and %d",
			ErrInvalidConfig, c.Output.Precision, maxPrecision)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q must be console or json", ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}

// Keys lists the dotted keys accepted by Get and Set.
func Keys() []string {
	return []string{
		"dataset.path",
		"dataset.default_country",
		"output.default_format",
		"output.precision",
		"logging.level",
		"logging.format",
		"logging.file",
	}
}

// Get returns the value stored under a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "dataset.path":
		return c.Dataset.Path, nil
	case "dataset.default_country":
		return c.Dataset.DefaultCountry, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
}

// Set stores value under a dotted key and validates the result. On error
// the config is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "dataset.path":
		next.Dataset.Path = value
	case "dataset.default_country":
		next.Dataset.DefaultCountry = value
	case "output.default_format":
		next.Output.DefaultFormat = value
	case "output.precision":
		p, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: output.precision %q is not an integer", ErrInvalidConfig, value)
		}
		next.Output.Precision = p
	case "logging.level":
		next.Logging.Level = value
	case "logging.format":
		next.Logging.Format = value
	case "logging.file":
		next.Logging.File = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
