package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// HomeEnvVar overrides the configuration directory.
const HomeEnvVar = "MEATMONITOR_HOME"

// GlobalConfig holds the global configuration instance.
var GlobalConfig *Config        //nolint:gochecknoglobals // Singleton pattern for configuration
var globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfigInit flag
var globalConfigInit bool       //nolint:gochecknoglobals // Tracks if global config has been initialized

// InitGlobalConfig initializes the global configuration.
func InitGlobalConfig() {
	InitGlobalConfigWithOverlay("")
}

// InitGlobalConfigWithOverlay initializes the global configuration and
// shallow-merges overlayPath on top before environment overrides are
// re-applied. An empty path behaves like InitGlobalConfig.
func InitGlobalConfigWithOverlay(overlayPath string) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	if globalConfigInit {
		return
	}

	GlobalConfig = NewWithOverlay(overlayPath)
	globalConfigInit = true
}

// NewWithOverlay is New followed by a shallow merge of overlayPath.
func NewWithOverlay(overlayPath string) *Config {
	cfg := New()
	if overlayPath == "" {
		return cfg
	}

	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		Logger.Warn().Err(err).Str("path", overlayPath).Msg("ignoring config overlay")
		return cfg
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		Logger.Warn().Err(err).Msg("ignoring invalid environment overrides")
	}
	return cfg
}

// ResetGlobalConfigForTest resets the global config for testing purposes.
func ResetGlobalConfigForTest() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()

	GlobalConfig = nil
	globalConfigInit = false
}

// GetGlobalConfig returns the global configuration, initializing it if needed.
func GetGlobalConfig() *Config {
	InitGlobalConfig()
	return GlobalConfig
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	cfg := GetGlobalConfig()
	return cfg.Output.DefaultFormat
}

// GetOutputPrecision returns the configured output precision.
func GetOutputPrecision() int {
	cfg := GetGlobalConfig()
	return cfg.Output.Precision
}

// GetDatasetPath returns the configured dataset file, or "" for the embedded one.
func GetDatasetPath() string {
	cfg := GetGlobalConfig()
	return cfg.Dataset.Path
}

// GetDefaultCountry returns the country used when none is given on the command line.
func GetDefaultCountry() string {
	cfg := GetGlobalConfig()
	return cfg.Dataset.DefaultCountry
}

// EnsureConfigDir ensures the meatmonitor configuration directory exists.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// EnsureLogDir creates the parent directory of the configured log file.
// It does nothing when logging to stderr.
func EnsureLogDir() error {
	cfg := GetGlobalConfig()
	if cfg.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(cfg.Logging.File)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}

// GetConfigDir returns $MEATMONITOR_HOME or ~/.meatmonitor.
func GetConfigDir() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".meatmonitor"), nil
}

// GetConfigPath returns the path of the main config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
