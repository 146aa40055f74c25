package footprint

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rshade/meatmonitor/assets"
)

// Required dataset columns. Consumption columns are matched by prefix so the
// full FAO headers, e.g. "Bovine meat food supply quantity (kg/capita/yr)
// (FAO, 2020)", are recognised.
const (
	columnEntity = "entity"
	columnYear   = "year"
)

//nolint:gochecknoglobals // Static lookup table.
var consumptionColumnPrefixes = map[AnimalType]string{
	Beef:    "bovine meat",
	Poultry: "poultry meat",
	Pork:    "pigmeat",
	Lamb:    "mutton & goat meat",
}

// columnIndex maps the required columns to their position in a header row.
type columnIndex struct {
	entity      int
	year        int
	consumption [NumAnimalTypes]int
}

// datasetRow is one parsed record of the dataset.
type datasetRow struct {
	entity    string
	annualKg  map[AnimalType]float64
	qualifies bool
}

// countryBlock collects the consecutive rows of one country.
type countryBlock struct {
	entity string
	latest *datasetRow
}

// LoadFile reads the reference dataset at path.
func LoadFile(path string) (*ReferenceData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference dataset %s: %w", path, err)
	}
	defer f.Close()

	ref, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ref, nil
}

// LoadDefault reads the sample dataset embedded in the binary.
func LoadDefault() (*ReferenceData, error) {
	return Load(bytes.NewReader(assets.PerCapitaCSV))
}

// Load parses a per-capita consumption table and keeps, for every country,
// the final qualifying row of its block of consecutive rows. Rows are expected
// grouped by country with ascending years, so this is the most recent year.
//
// A row qualifies when its year and all four consumption cells hold numbers.
// Blank consumption cells disqualify a row; any other unparsable cell, a
// missing column, or a country without a qualifying row is ErrDataFormat.
func Load(r io.Reader) (*ReferenceData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrDataFormat, err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	countries := make(map[string]map[AnimalType]float64)
	var block *countryBlock

	closeBlock := func() error {
		if block == nil {
			return nil
		}
		if block.latest == nil {
			return fmt.Errorf("%w: country %q has no row with complete consumption data",
				ErrDataFormat, block.entity)
		}
		countries[block.entity] = block.latest.annualKg
		return nil
	}

	line := 1
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		line++
		if readErr != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDataFormat, line, readErr)
		}

		row, rowErr := parseRow(record, idx, line)
		if rowErr != nil {
			return nil, rowErr
		}

		if block == nil || block.entity != row.entity {
			if err = closeBlock(); err != nil {
				return nil, err
			}
			block = &countryBlock{entity: row.entity}
		}
		if row.qualifies {
			block.latest = row
		}
	}

	if err = closeBlock(); err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: no country rows", ErrDataFormat)
	}

	log.Debug().
		Str("component", "footprint").
		Int("countries", len(countries)).
		Int("rows", line-1).
		Msg("reference dataset loaded")

	return NewReferenceData(countries), nil
}

// indexColumns locates the required columns in the header row.
func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{entity: -1, year: -1}
	for i := range idx.consumption {
		idx.consumption[i] = -1
	}

	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch normalized {
		case columnEntity:
			idx.entity = i
			continue
		case columnYear:
			idx.year = i
			continue
		}
		for _, a := range AnimalTypes() {
			if idx.consumption[a] == -1 && strings.HasPrefix(normalized, consumptionColumnPrefixes[a]) {
				idx.consumption[a] = i
			}
		}
	}

	var missing []string
	if idx.entity == -1 {
		missing = append(missing, "Entity")
	}
	if idx.year == -1 {
		missing = append(missing, "Year")
	}
	for _, a := range AnimalTypes() {
		if idx.consumption[a] == -1 {
			missing = append(missing, consumptionColumnPrefixes[a])
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: missing columns: %s", ErrDataFormat, strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseRow converts one CSV record.
func parseRow(record []string, idx columnIndex, line int) (*datasetRow, error) {
	cell := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := &datasetRow{
		entity:    cell(idx.entity),
		annualKg:  make(map[AnimalType]float64, NumAnimalTypes),
		qualifies: true,
	}
	if row.entity == "" {
		return nil, fmt.Errorf("%w: line %d: empty Entity", ErrDataFormat, line)
	}

	if _, err := strconv.Atoi(cell(idx.year)); err != nil {
		return nil, fmt.Errorf("%w: line %d: invalid Year %q", ErrDataFormat, line, cell(idx.year))
	}

	for _, a := range AnimalTypes() {
		raw := cell(idx.consumption[a])
		if raw == "" {
			row.qualifies = false
			continue
		}
		kg, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: line %d: invalid %s consumption %q",
				ErrDataFormat, line, a, raw)
		}
		row.annualKg[a] = kg
	}

	return row, nil
}
