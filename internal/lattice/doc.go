// Package lattice models an accelerator lattice as an ordered sequence of
// elements with physical lengths.
//
// The package provides:
//
//   - [Element]: a single device with a length and a display [Kind]
//   - [Lattice]: the ordered element sequence plus an optional longitudinal window
//   - [Superperiod]: the window bounds of the n-th superperiod of a ring
//
// # Windows
//
// A window restricts which elements are active. Active elements keep their
// global index so that per-element optics lookups stay valid:
//
//	lat, _ := lattice.New(elems)
//	start, end := lattice.Superperiod(lat.Length(), 1, 6)
//	_ = lat.SetWindow(start, end)
//	for _, a := range lat.ActiveElements() {
//	    fmt.Println(a.Index, a.Element.Name)
//	}
//
// Elements are never reordered.
package lattice
