package leach

import (
	"errors"
	"fmt"
)

// Domain errors for column simulations.
var (
	// ErrGrid indicates grid sizing outside the valid domain.
	ErrGrid = errors.New("leach: invalid grid")

	// ErrParam indicates a physical parameter outside its documented domain.
	ErrParam = errors.New("leach: invalid parameter")

	// ErrUnstable indicates the explicit scheme produced a non-finite value.
	ErrUnstable = errors.New("leach: scheme unstable (non-finite value)")
)

// StepError locates a failure within the time-stepping loop.
type StepError struct {
	Step    int
	Time    float64 // days
	Node    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f, node %d): %v", e.Step, e.Time, e.Node, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
