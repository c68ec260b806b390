package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindow indicates a window with start >= end or no active elements.
	ErrInvalidWindow = errors.New("lattice: invalid window")

	// ErrEmptyLattice indicates a lattice with no elements.
	ErrEmptyLattice = errors.New("lattice: no elements")

	// ErrNegativeLength indicates an element with a negative or non-finite length.
	ErrNegativeLength = errors.New("lattice: element length must be finite and >= 0")
)

// WindowError records the window that was rejected.
type WindowError struct {
	Start, End float64
	Err        error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%v [%g, %g)", e.Err, e.Start, e.End)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
