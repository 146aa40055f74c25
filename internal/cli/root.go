package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/meatmonitor/internal/config"
	"github.com/rshade/meatmonitor/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal reports whether both stdin and stdout are terminals. Tests
// replace it to exercise the interactive paths.
//
//nolint:gochecknoglobals // test seam
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram runs a Bubble Tea model to completion. Tests replace it.
//
//nolint:gochecknoglobals // test seam
var runProgram = func(ctx context.Context, model tea.Model) (tea.Model, error) {
	return tea.NewProgram(model, tea.WithContext(ctx)).Run()
}

// NewRootCmd creates the root Cobra command for the meatmonitor CLI.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult   *logging.LogPathResult
		overlayPath string
	)

	cmd := &cobra.Command{
		Use:     "meatmonitor",
		Short:   "Estimate the CO2 footprint of the meat you eat",
		Long:    "meatmonitor: compare your weekly meat emissions with your country's average and plan a reduction",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.InitGlobalConfigWithOverlay(overlayPath)
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&overlayPath, "config", "", "extra config file merged over ~/.meatmonitor/config.yaml")
	cmd.AddCommand(NewAssessCmd(), NewCountriesCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Assess a weekly diet against the Canadian average
  meatmonitor assess --country Canada --beef 2 --poultry 3 --pork 5 --lamb 7

  # Model a goal of one beef serving and two lamb servings
  meatmonitor assess --country Canada --beef 2 --poultry 3 --pork 5 --lamb 7 \
    --goal-beef 1 --goal-lamb 2

  # Adjust the goal interactively
  meatmonitor assess --country Canada --beef 2 --lamb 7 --interactive

  # List countries with the highest beef consumption
  meatmonitor countries --sort beef:desc --limit 10

  # Use your own FAO export
  meatmonitor assess --dataset per-capita-meat.csv --country France --beef 3

  # Initialize configuration
  meatmonitor config init`
