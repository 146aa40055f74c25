package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/meatmonitor/internal/config"
)

// NewConfigValidateCmd creates the config validate command. Besides the
// field checks it loads the configured dataset and default country.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   "Validate configuration and dataset",
		Example: `  meatmonitor config validate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd)
		},
	}
}

func runConfigValidate(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	_, registry, err := loadRegistry(cmd.Context(), cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.Dataset.DefaultCountry != "" {
		if _, err = registry.Lookup(cfg.Dataset.DefaultCountry); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	cmd.Printf("Configuration is valid (%d countries in dataset)\n", registry.Len())
	return nil
}
