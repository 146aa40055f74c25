package footprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadTestData loads testdata/percapita.csv and builds its registry.
func loadTestData(t *testing.T) (*ReferenceData, *Registry) {
	t.Helper()
	ref, err := LoadFile("testdata/percapita.csv")
	require.NoError(t, err)
	reg, err := BuildAll(ref)
	require.NoError(t, err)
	return ref, reg
}

func TestLoad_KeepsFinalRowOfEachCountry(t *testing.T) {
	ref, err := LoadFile("testdata/percapita.csv")
	require.NoError(t, err)

	assert.Equal(t, 4, ref.CountryCount())

	canada, err := ref.CountryAnnualKg("Canada")
	require.NoError(t, err)
	assert.Equal(t, map[AnimalType]float64{Beef: 18, Poultry: 39, Pork: 24, Lamb: 1}, canada)

	mongolia, err := ref.CountryAnnualKg("Mongolia")
	require.NoError(t, err)
	assert.InDelta(t, 48.9, mongolia[Lamb], 1e-9)
}

func TestLoad_SkipsRowsWithBlankCells(t *testing.T) {
	ref, err := LoadFile("testdata/percapita.csv")
	require.NoError(t, err)

	nolamb, err := ref.CountryAnnualKg("Nolamb")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, nolamb[Beef], 1e-9, "final complete row wins")
	assert.Zero(t, nolamb[Lamb])
}

func TestLoad_BlankTrailingRowFallsBackToEarlierYear(t *testing.T) {
	csv := "Entity,Year,Bovine meat,Poultry meat,Pigmeat,Mutton & Goat meat\n" +
		"Canada,2018,18.3,38.5,23.6,1.0\n" +
		"Canada,2019,,,,\n"

	ref, err := Load(strings.NewReader(csv))
	require.NoError(t, err)

	canada, err := ref.CountryAnnualKg("Canada")
	require.NoError(t, err)
	assert.InDelta(t, 18.3, canada[Beef], 1e-9)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{
			name:        "missing consumption column",
			path:        "testdata/missing_column.csv",
			errContains: "mutton & goat meat",
		},
		{
			name:        "country without complete row",
			path:        "testdata/incomplete_country.csv",
			errContains: "Atlantis",
		},
		{
			name:        "non-numeric value",
			path:        "testdata/bad_value.csv",
			errContains: "thirty-nine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := LoadFile(tt.path)
			require.Error(t, err)
			assert.Nil(t, ref)
			assert.ErrorIs(t, err, ErrDataFormat)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "header only", input: "Entity,Year,Bovine meat,Poultry meat,Pigmeat,Mutton & Goat meat\n"},
		{name: "bad year", input: "Entity,Year,Bovine meat,Poultry meat,Pigmeat,Mutton & Goat meat\nCanada,last,1,2,3,4\n"},
		{name: "empty entity", input: "Entity,Year,Bovine meat,Poultry meat,Pigmeat,Mutton & Goat meat\n,2019,1,2,3,4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrDataFormat)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.csv")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDataFormat)
}

func TestLoadDefault(t *testing.T) {
	ref, err := LoadDefault()
	require.NoError(t, err)
	assert.Positive(t, ref.CountryCount())

	canada, err := ref.CountryAnnualKg("Canada")
	require.NoError(t, err)
	assert.InDelta(t, 18.0, canada[Beef], 1e-9)
}

func TestReferenceData_EmissionsPerServing(t *testing.T) {
	ref := NewReferenceData(nil)

	for _, a := range AnimalTypes() {
		t.Run(a.String(), func(t *testing.T) {
			assert.Equal(t, ref.EmissionsPerAnimal(a)*ref.ServingSizeGrams(a), ref.EmissionsPerServing(a))
		})
	}

	assert.InDelta(t, 498.9, ref.EmissionsPerAnimal(Beef), 1e-9)
	assert.InDelta(t, 85.0, ref.ServingSizeGrams(Poultry), 1e-9)
	assert.InDelta(t, 100.0, ref.ServingSizeGrams(Lamb), 1e-9)
}

func TestReferenceData_UnknownCountry(t *testing.T) {
	ref := NewReferenceData(map[string]map[AnimalType]float64{"Canada": {Beef: 18}})

	_, err := ref.CountryAnnualKg("Narnia")
	assert.ErrorIs(t, err, ErrUnknownCountry)
}

func TestParseAnimalType(t *testing.T) {
	tests := []struct {
		input   string
		want    AnimalType
		wantErr bool
	}{
		{input: "Beef", want: Beef},
		{input: " poultry ", want: Poultry},
		{input: "Chicken", want: Poultry},
		{input: "PORK", want: Pork},
		{input: "lamb", want: Lamb},
		{input: "goat", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAnimalType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAnimalType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnimalType_MarshalText(t *testing.T) {
	text, err := Pork.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Pork", string(text))

	_, err = AnimalType(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownAnimalType)
	assert.Equal(t, "AnimalType(9)", AnimalType(9).String())
}
