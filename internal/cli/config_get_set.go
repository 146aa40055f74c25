package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/meatmonitor/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one configuration value",
		Example:   `  meatmonitor config get output.default_format`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is validated
// before the file is written.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value",
		Long: "Change one configuration value in ~/.meatmonitor/config.yaml.\n\nKeys: " +
			strings.Join(config.Keys(), ", "),
		Example: `  meatmonitor config set dataset.default_country Canada
  meatmonitor config set output.precision 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			// Edit the file as written, without env or overlay values.
			cfg, err := config.Load(path)
			if os.IsNotExist(err) {
				cfg = config.Default()
			} else if err != nil {
				return err
			}

			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.SaveTo(path); err != nil {
				return err
			}

			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, overlay and environment are applied.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"list"},
		Short:   "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			switch output {
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case outputFormatJSON:
				return writeJSON(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf("unsupported output format %q (use yaml or json)", output)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", "yaml", "Output format (yaml, json)")
	return cmd
}
