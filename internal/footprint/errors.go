package footprint

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for the footprint engine. Callers compare with errors.Is;
// the returned errors wrap these with row, column or stage detail.
var (
	// ErrDataFormat indicates a malformed reference dataset. It is fatal at startup.
	ErrDataFormat = constError("malformed reference dataset")

	// ErrUnknownCountry indicates a country name missing from the reference dataset.
	ErrUnknownCountry = constError("unknown country")

	// ErrUnknownAnimalType indicates a meat type outside Beef, Poultry, Pork and Lamb.
	ErrUnknownAnimalType = constError("unknown animal type")

	// ErrInvalidState indicates a lifecycle step invoked before its prerequisite.
	// It is a programming error, not a user-facing condition.
	ErrInvalidState = constError("invalid state")

	// ErrDivisionByZero indicates a country whose baseline emissions sum to zero.
	ErrDivisionByZero = constError("division by zero")

	// ErrInvalidSortField indicates a country sort field that does not exist.
	ErrInvalidSortField = constError("invalid sort field")
)
