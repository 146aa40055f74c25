package config

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/meatmonitor/internal/logging"
)

// Logger is used by this package before the CLI logger exists.
//
//nolint:gochecknoglobals // package logger for config loading diagnostics
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	Level(zerolog.WarnLevel).
	With().
	Timestamp().
	Logger()

//nolint:gochecknoglobals // guards Logger
var logMu sync.Mutex

// SetLogger replaces the package logger, typically with the CLI logger once
// logging has been configured.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	Logger = l
}

// ToLoggingConfig converts the logging section into a logging.Config.
// A non-empty File selects file output; otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global logging section. Flag
// overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}
