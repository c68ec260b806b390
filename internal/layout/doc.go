// Package layout turns the active elements of a lattice into a strip of
// integer-width segments proportional to element length.
//
// Widths are truncated toward zero, except that a nonzero element narrower
// than one pixel is widened to exactly one pixel so it stays visible.
// Zero-width elements are dropped without affecting their neighbours.
// Padding is a fixed policy value on both ends of the strip.
//
//	res, err := layout.Strip(lat, 1500, layout.DefaultPolicy())
//	for _, seg := range res.Segments {
//	    draw(seg.Width, layout.Colour(seg.Kind))
//	}
package layout
