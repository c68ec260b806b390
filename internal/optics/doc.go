// Package optics defines the simulation engine queried by the position
// resolver and provides a reference linear-optics engine.
//
// All per-element arrays share one indexing convention: entry i is the value
// at the entrance of global element i, and every array has one extra entry
// for the lattice exit. [Engine.ElementLength] is 0-based as well.
//
// # Radiation
//
// Engines start with radiation enabled. Callers must call
// [Engine.RadiationOff] before querying linear optics; the resolver does this
// on construction.
//
// # Reference engine
//
// [Linear] propagates thick-element transfer matrices (drift, quadrupole,
// sector dipole, sextupole as drift) and derives tunes, chromaticity and the
// synchrotron radiation integrals:
//
//	eng, err := optics.NewLinear(lat.Elements(), 3.0)
//	eng.RadiationOff()
//	qx := eng.Tune(optics.Horizontal)
package optics
