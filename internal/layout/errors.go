package layout

import "errors"

// ErrDegenerateLattice indicates a total length of zero, for which the
// pixel ratio is undefined.
var ErrDegenerateLattice = errors.New("layout: degenerate lattice (total length is zero)")
