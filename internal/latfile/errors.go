package latfile

import "errors"

var (
	ErrUnknownElement  = errors.New("latfile: unknown element")
	ErrUnknownLine     = errors.New("latfile: unknown line")
	ErrNoBeamline      = errors.New("latfile: no beamline defined")
	ErrUndefinedSymbol = errors.New("latfile: undefined symbol")
	ErrRecursiveLine   = errors.New("latfile: line contains itself")
)
