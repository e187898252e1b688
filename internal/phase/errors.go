package phase

import (
	"errors"
	"fmt"
)

// Domain errors for field construction and convergence runs.
var (
	// ErrConfiguration indicates invalid field or run parameters.
	ErrConfiguration = errors.New("phase: invalid configuration")

	// ErrDimensionMismatch indicates a point whose dimension does not match the field.
	ErrDimensionMismatch = errors.New("phase: dimension mismatch between point and field")

	// ErrInvalidPoint indicates a point containing NaN or Inf components.
	ErrInvalidPoint = errors.New("phase: invalid point (NaN or Inf detected)")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("phase: run canceled by context")
)

// RunError wraps an error with the step at which it occurred.
type RunError struct {
	Step    int
	Point   Point
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
