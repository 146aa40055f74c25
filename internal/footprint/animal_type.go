package footprint

import (
	"fmt"
	"strings"
)

// AnimalType identifies one of the four tracked meat types.
type AnimalType int

// The iota order is the fixed intake order used for serving slices.
const (
	Beef AnimalType = iota
	Poultry
	Pork
	Lamb
)

// NumAnimalTypes is the number of tracked meat types.
const NumAnimalTypes = 4

// Servings holds one value per animal type in Beef, Poultry, Pork, Lamb order.
type Servings [NumAnimalTypes]float64

// AnimalTypes returns the animal types in fixed intake order.
func AnimalTypes() []AnimalType {
	return []AnimalType{Beef, Poultry, Pork, Lamb}
}

// String returns the display name of the animal type.
func (a AnimalType) String() string {
	switch a {
	case Beef:
		return "Beef"
	case Poultry:
		return "Poultry"
	case Pork:
		return "Pork"
	case Lamb:
		return "Lamb"
	default:
		return fmt.Sprintf("AnimalType(%d)", int(a))
	}
}

// Valid reports whether a is one of the four recognised types.
func (a AnimalType) Valid() bool {
	return a >= Beef && a <= Lamb
}

// MarshalText encodes the animal type by name so it can key JSON maps.
func (a AnimalType) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAnimalType, int(a))
	}
	return []byte(a.String()), nil
}

// ParseAnimalType resolves a case-insensitive name. "chicken" is accepted as
// an alias for Poultry since that is how the intake form labels it.
func ParseAnimalType(s string) (AnimalType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beef":
		return Beef, nil
	case "poultry", "chicken":
		return Poultry, nil
	case "pork":
		return Pork, nil
	case "lamb":
		return Lamb, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAnimalType, s)
	}
}
