package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/meatmonitor/internal/config"
	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
	"github.com/rshade/meatmonitor/internal/logging"
	"github.com/rshade/meatmonitor/internal/tui"
)

// AssessParams holds the flags of the assess command.
type AssessParams struct {
	Name        string
	Country     string
	Dataset     string
	Servings    footprint.Servings
	Goals       footprint.Servings
	HasGoals    bool
	Output      string
	Precision   int
	Chart       bool
	Interactive bool
}

// assessOutput is the JSON shape of an assessment.
type assessOutput struct {
	footprint.Report
	AnnualEquivalencies *greenops.EquivalencyOutput `json:"annual_equivalencies,omitempty"`
}

// NewAssessCmd creates the "assess" command.
//
// Current servings come from --beef, --poultry, --pork and --lamb. Any
// --goal-* flag sets a goal; animals without a goal flag keep their current
// servings. --interactive opens the goal screen, and the country picker
// first when no country is known.
func NewAssessCmd() *cobra.Command {
	var params AssessParams
	var goalFlags [footprint.NumAnimalTypes]float64

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Estimate weekly CO2 from meat and compare with your country's average",
		Long: `Estimate the CO2 emitted each week by the meat you eat, compare it with the
average for your country and optionally model a reduction goal.

Servings are per week. Serving sizes are 85 g for beef and poultry and
100 g for pork and lamb.`,
		Example: `  meatmonitor assess --country Canada --beef 2 --poultry 3 --pork 5 --lamb 7
  meatmonitor assess --country Canada --beef 2 --goal-beef 0 --output json
  meatmonitor assess --beef 2 --lamb 7 --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, a := range footprint.AnimalTypes() {
				if cmd.Flags().Changed(goalFlagName(a)) {
					params.HasGoals = true
				}
			}
			if params.HasGoals {
				params.Goals = params.Servings
				for _, a := range footprint.AnimalTypes() {
					if cmd.Flags().Changed(goalFlagName(a)) {
						params.Goals[a] = goalFlags[a]
					}
				}
			}
			if !cmd.Flags().Changed("output") {
				params.Output = config.GetDefaultOutputFormat()
			}
			if !cmd.Flags().Changed("precision") {
				params.Precision = config.GetOutputPrecision()
			}
			if params.Country == "" {
				params.Country = config.GetDefaultCountry()
			}
			params.Dataset = resolveDatasetPath(params.Dataset)
			return executeAssess(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "your name, shown in the report")
	cmd.Flags().StringVar(&params.Country, "country", "", "country to compare against (default from config)")
	cmd.Flags().StringVar(&params.Dataset, "dataset", "", "per-capita consumption CSV (default: built-in sample)")
	for _, a := range footprint.AnimalTypes() {
		name := strings.ToLower(a.String())
		cmd.Flags().Float64Var(&params.Servings[a], name, 0, fmt.Sprintf("%s servings per week", name))
		cmd.Flags().Float64Var(&goalFlags[a], goalFlagName(a), 0, fmt.Sprintf("goal %s servings per week", name))
	}
	cmd.Flags().StringVar(&params.Output, "output", config.FormatTable, "Output format (table, json, ndjson)")
	cmd.Flags().IntVar(&params.Precision, "precision", 1, "decimal places in table output")
	cmd.Flags().BoolVar(&params.Chart, "chart", false, "include a bar chart in table output")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "adjust the goal with sliders")

	return cmd
}

func goalFlagName(a footprint.AnimalType) string {
	return "goal-" + strings.ToLower(a.String())
}

// ValidateAssessParams checks flag combinations. Exported for testing.
func ValidateAssessParams(params *AssessParams) error {
	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}
	if params.Country == "" && !params.Interactive {
		return errors.New("--country is required (or set dataset.default_country in config)")
	}
	if params.HasGoals && params.Interactive {
		return errors.New("--goal-* flags cannot be combined with --interactive")
	}
	for _, a := range footprint.AnimalTypes() {
		name := strings.ToLower(a.String())
		if err := validateServings("--"+name, params.Servings[a]); err != nil {
			return err
		}
		if params.HasGoals {
			if err := validateServings("--"+goalFlagName(a), params.Goals[a]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateServings(flag string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a non-negative number of servings, got %v", flag, v)
	}
	return nil
}

func executeAssess(cmd *cobra.Command, params AssessParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateAssessParams(&params); err != nil {
		return err
	}
	if params.Interactive && !isTerminal() {
		return errors.New("--interactive requires a terminal")
	}

	ref, registry, err := loadRegistry(ctx, params.Dataset)
	if err != nil {
		return err
	}

	if params.Country == "" {
		picked, pickErr := pickCountry(cmd, registry)
		if pickErr != nil || picked == "" {
			return pickErr
		}
		params.Country = picked
	}

	user, err := footprint.NewUser(ref, registry, params.Name, params.Country)
	if err != nil {
		return err
	}
	if err = user.SetConsumption(params.Servings); err != nil {
		return err
	}
	if err = user.ComputeStats(); err != nil {
		return fmt.Errorf("cannot compare with %s: %w", params.Country, err)
	}

	switch {
	case params.Interactive:
		confirmed, goalErr := runGoalScreen(cmd, user, params.Precision)
		if goalErr != nil {
			return goalErr
		}
		if !confirmed {
			// Discard the unconfirmed goal and report current stats only.
			if err = user.SetConsumption(params.Servings); err != nil {
				return err
			}
			if err = user.ComputeStats(); err != nil {
				return err
			}
		}
	case params.HasGoals:
		if err = user.SetGoals(params.Goals); err != nil {
			return err
		}
	}

	report, err := footprint.BuildReport(user)
	if err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "assess").
		Str("country", report.Country).
		Str("band", string(report.Band)).
		Bool("goal", report.Goal != nil).
		Dur("duration_ms", time.Since(start)).
		Msg("assessment complete")

	return renderAssessment(cmd.OutOrStdout(), params, report)
}

func pickCountry(cmd *cobra.Command, registry *footprint.Registry) (string, error) {
	final, err := runProgram(cmd.Context(), tui.NewCountryModel(registry.Countries()))
	if err != nil {
		return "", fmt.Errorf("running country picker: %w", err)
	}
	picker, ok := final.(tui.CountryModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type: %T, expected tui.CountryModel", final)
	}
	if picker.Selected() == nil {
		return "", nil
	}
	return picker.Selected().Name(), nil
}

func runGoalScreen(cmd *cobra.Command, user *footprint.User, precision int) (bool, error) {
	model, err := tui.NewGoalModel(user, precision)
	if err != nil {
		return false, err
	}

	final, err := runProgram(cmd.Context(), model)
	if err != nil {
		return false, fmt.Errorf("running goal screen: %w", err)
	}
	goalModel, ok := final.(*tui.GoalModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type: %T, expected *tui.GoalModel", final)
	}
	return goalModel.Confirmed(), nil
}

func renderAssessment(w io.Writer, params AssessParams, report footprint.Report) error {
	eq := greenops.CalculateWeekly(float64(report.TotalEmissions))

	out := assessOutput{Report: report}
	if !eq.IsEmpty {
		out.AnnualEquivalencies = &eq
	}

	switch params.Output {
	case outputFormatJSON:
		return writeJSON(w, out)
	case outputFormatNDJSON:
		return writeNDJSON(w, out)
	default:
		return renderAssessmentTable(w, params, report, eq)
	}
}

func renderAssessmentTable(w io.Writer, params AssessParams, report footprint.Report, eq greenops.EquivalencyOutput) error {
	sections := []string{
		tui.RenderAssessment(report, eq, params.Precision),
		tui.RenderBreakdownTable(report, params.Precision),
	}
	if params.Chart {
		sections = append(sections, tui.RenderEmissionChart(report, 0))
	}
	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}
