package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates the solution became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive step size or step count.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrDuplicateJob indicates two ensemble jobs with the same name.
	ErrDuplicateJob = errors.New("dynamo: duplicate ensemble job")
)

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	X       float64
	Y       float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (x=%.4f, y=%g): %v", e.Step, e.X, e.Y, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
