package tableau

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewStages indicates a tableau with fewer than two stages.
	ErrTooFewStages = errors.New("tableau: at least two stages required")

	// ErrShape indicates coefficient rows that do not form a valid tableau.
	ErrShape = errors.New("tableau: malformed coefficient shape")

	// ErrUnknownMethod indicates a catalogue lookup for a name that does not exist.
	ErrUnknownMethod = errors.New("tableau: unknown method")
)

// ShapeError reports which coefficient sequence had the wrong length.
type ShapeError struct {
	Field string
	Got   int
	Want  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has %d entries, want %d", ErrShape, e.Field, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
