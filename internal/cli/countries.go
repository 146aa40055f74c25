package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/meatmonitor/internal/cli/pagination"
	"github.com/rshade/meatmonitor/internal/config"
	"github.com/rshade/meatmonitor/internal/footprint"
	"github.com/rshade/meatmonitor/internal/greenops"
	"github.com/rshade/meatmonitor/internal/logging"
	"github.com/rshade/meatmonitor/internal/tui"
)

const (
	countryNameColWidth  = 24
	countryValueColWidth = 10
)

// CountriesParams holds the flags of the countries command.
type CountriesParams struct {
	Dataset     string
	Output      string
	Sort        string
	Interactive bool
	Pagination  pagination.PaginationParams
}

// countryRecord is the JSON shape of one country.
type countryRecord struct {
	Name              string                                    `json:"name"`
	GramsPerWeek      map[footprint.AnimalType]footprint.Number `json:"average_g_per_week"`
	KgPerYear         map[footprint.AnimalType]footprint.Number `json:"average_kg_per_year"`
	TotalGramsPerWeek footprint.Number                          `json:"total_g_per_week"`
}

type countriesOutput struct {
	Countries  []countryRecord           `json:"countries"`
	Pagination pagination.PaginationMeta `json:"pagination"`
}

// NewCountriesCmd creates the "countries" command, which lists the average
// weekly consumption of every country in the dataset.
func NewCountriesCmd() *cobra.Command {
	params := CountriesParams{Pagination: *pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries and their average weekly meat consumption",
		Example: `  meatmonitor countries
  meatmonitor countries --sort total:desc --limit 5
  meatmonitor countries --page 2 --page-size 10 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("output") {
				params.Output = config.GetDefaultOutputFormat()
			}
			params.Dataset = resolveDatasetPath(params.Dataset)
			return executeCountries(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Dataset, "dataset", "", "per-capita consumption CSV (default: built-in sample)")
	cmd.Flags().StringVar(&params.Output, "output", config.FormatTable, "Output format (table, json, ndjson)")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort by field[:asc|desc] (name, total, beef, poultry, pork, lamb)")
	cmd.Flags().IntVar(&params.Pagination.Limit, "limit", pagination.DefaultLimit, "maximum countries to show (0 = all)")
	cmd.Flags().IntVar(&params.Pagination.Offset, "offset", pagination.DefaultOffset, "countries to skip")
	cmd.Flags().IntVar(&params.Pagination.Page, "page", 0, "page number (requires --page-size)")
	cmd.Flags().IntVar(&params.Pagination.PageSize, "page-size", 0, "countries per page")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "browse countries in a table")

	return cmd
}

func executeCountries(cmd *cobra.Command, params CountriesParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}
	if err := params.Pagination.Validate(); err != nil {
		return err
	}

	field, order, err := pagination.ParseSort(params.Sort)
	if err != nil {
		return err
	}
	sorter := footprint.NewCountrySorter()
	if err = sorter.ValidateField(field); err != nil {
		return err
	}
	params.Pagination.SortField = field
	params.Pagination.SortOrder = order

	_, registry, err := loadRegistry(ctx, params.Dataset)
	if err != nil {
		return err
	}

	if params.Interactive {
		if !isTerminal() {
			return errors.New("--interactive requires a terminal")
		}
		name, pickErr := pickCountry(cmd, registry)
		if pickErr != nil {
			return pickErr
		}
		if name != "" {
			cmd.Println(name)
		}
		return nil
	}

	countries := registry.Countries()
	if field != "" {
		countries = sorter.Sort(countries, field, order)
	}
	page := pagination.Apply(params.Pagination, countries)
	meta := pagination.NewPaginationMeta(params.Pagination, len(countries))

	log.Debug().Ctx(ctx).
		Str("sort", field+":"+order).
		Int("total", len(countries)).
		Int("shown", len(page)).
		Msg("listing countries")

	return renderCountries(cmd.OutOrStdout(), params.Output, page, meta)
}

func newCountryRecord(c *footprint.Country) countryRecord {
	rec := countryRecord{
		Name:         c.Name(),
		GramsPerWeek: make(map[footprint.AnimalType]footprint.Number, footprint.NumAnimalTypes),
		KgPerYear:    make(map[footprint.AnimalType]footprint.Number, footprint.NumAnimalTypes),
	}
	for _, a := range footprint.AnimalTypes() {
		g := c.AverageGramsPerWeek(a)
		rec.GramsPerWeek[a] = footprint.Number(g)
		rec.KgPerYear[a] = footprint.Number(c.AverageKgPerYear(a))
		rec.TotalGramsPerWeek += footprint.Number(g)
	}
	return rec
}

func renderCountries(w io.Writer, format string, countries []*footprint.Country, meta pagination.PaginationMeta) error {
	records := make([]countryRecord, 0, len(countries))
	for _, c := range countries {
		records = append(records, newCountryRecord(c))
	}

	switch format {
	case outputFormatJSON:
		return writeJSON(w, countriesOutput{Countries: records, Pagination: meta})
	case outputFormatNDJSON:
		for _, rec := range records {
			if err := writeNDJSON(w, rec); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderCountriesTable(w, records, meta)
	}
}

func renderCountriesTable(w io.Writer, records []countryRecord, meta pagination.PaginationMeta) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, tui.InfoStyle.Render("No countries to display."))
		return err
	}

	nameStyle := lipgloss.NewStyle().Width(countryNameColWidth)
	valueStyle := lipgloss.NewStyle().Width(countryValueColWidth).Align(lipgloss.Right)

	var sb strings.Builder
	sb.WriteString(tui.HeaderStyle.Inherit(nameStyle).Render("Country"))
	for _, a := range footprint.AnimalTypes() {
		sb.WriteString(tui.HeaderStyle.Inherit(valueStyle).Render(a.String()))
	}
	sb.WriteString(tui.HeaderStyle.Inherit(valueStyle).Render("Total"))
	sb.WriteString("\n")

	for _, rec := range records {
		sb.WriteString(nameStyle.Render(rec.Name))
		for _, a := range footprint.AnimalTypes() {
			sb.WriteString(valueStyle.Render(greenops.FormatFloat(float64(rec.GramsPerWeek[a]), 0)))
		}
		sb.WriteString(valueStyle.Render(greenops.FormatFloat(float64(rec.TotalGramsPerWeek), 0)))
		sb.WriteString("\n")
	}

	sb.WriteString(tui.InfoStyle.Render(fmt.Sprintf("Average grams per person per week. Page %d of %d, %d countries.",
		meta.CurrentPage, meta.TotalPages, meta.TotalItems)))

	_, err := fmt.Fprintln(w, sb.String())
	return err
}
