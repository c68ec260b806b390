package resolver

import "errors"

var (
	// ErrIndexOutOfRange indicates a position that maps outside the engine arrays.
	ErrIndexOutOfRange = errors.New("resolver: index out of range")

	// ErrInvalidPosition indicates a NaN or infinite coordinate.
	ErrInvalidPosition = errors.New("resolver: position is not a finite number")

	// ErrRadiationOn indicates the engine was switched back to radiation-on
	// after the resolver disabled it.
	ErrRadiationOn = errors.New("resolver: engine has radiation enabled")

	// ErrEngineMismatch indicates engine arrays shorter than the lattice.
	ErrEngineMismatch = errors.New("resolver: engine arrays do not cover the lattice")
)
