package optics

import "errors"

var (
	// ErrUnstable indicates a one-turn matrix with |trace| >= 2 in some plane.
	ErrUnstable = errors.New("optics: no stable periodic solution")

	// ErrEmptyLattice indicates there was nothing to propagate through.
	ErrEmptyLattice = errors.New("optics: no elements")
)
