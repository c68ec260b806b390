package layout

import (
	"math"

	"github.com/san-kum/latviz/internal/lattice"
)

const (
	DefaultPadding  = 100
	DefaultMinWidth = 880
)

// Policy holds the tunable layout constants.
type Policy struct {
	// Padding is the margin, in pixels, on each end of the strip.
	Padding int `yaml:"padding" toml:"padding"`
	// MinWidth is the smallest target width Strip will lay out against.
	MinWidth int `yaml:"min_width" toml:"min_width"`
}

func DefaultPolicy() Policy {
	return Policy{Padding: DefaultPadding, MinWidth: DefaultMinWidth}
}

// Segment is the rendered extent of one element.
type Segment struct {
	Width int
	Kind  lattice.Kind
	Index int // global element index
}

type Result struct {
	Segments []Segment
	Padding  int
}

// Width returns the summed segment widths plus padding on both ends.
func (r Result) Width() int {
	w := 2 * r.Padding
	for _, s := range r.Segments {
		w += s.Width
	}
	return w
}

// At returns the segment under pixel px, counted from the left edge of the
// padded strip. ok is false over padding or past the end.
func (r Result) At(px int) (seg int, ok bool) {
	x := px - r.Padding
	if x < 0 {
		return 0, false
	}
	for i, s := range r.Segments {
		if x < s.Width {
			return i, true
		}
		x -= s.Width
	}
	return 0, false
}

// Sample maps each of cols evenly spaced columns across the padded strip to
// the segment under the column centre, or -1 over padding.
func (r Result) Sample(cols int) []int {
	out := make([]int, cols)
	total := r.Width()
	for c := range out {
		px := int((float64(c) + 0.5) * float64(total) / float64(cols))
		if seg, ok := r.At(px); ok {
			out[c] = seg
		} else {
			out[c] = -1
		}
	}
	return out
}

// PixelWidth applies the rounding rule to one element.
func PixelWidth(length, ratio float64) int {
	raw := length * ratio
	if raw >= 1 {
		return int(raw)
	}
	return int(math.Ceil(raw))
}

// Compute lays out elements against targetWidth pixels. A negative target
// is treated as zero.
func Compute(elements []lattice.Active, totalLength float64, targetWidth int, p Policy) (Result, error) {
	if totalLength == 0 || math.IsNaN(totalLength) {
		return Result{}, ErrDegenerateLattice
	}
	if targetWidth < 0 {
		targetWidth = 0
	}

	ratio := float64(targetWidth) / totalLength
	segs := make([]Segment, 0, len(elements))
	for _, a := range elements {
		w := PixelWidth(a.Element.Length, ratio)
		if w == 0 {
			continue
		}
		segs = append(segs, Segment{Width: w, Kind: a.Element.Kind, Index: a.Index})
	}

	padding := p.Padding
	if padding < 0 {
		padding = 0
	}
	return Result{Segments: segs, Padding: padding}, nil
}

// Strip clamps width to the policy minimum and lays out the active
// elements of lat.
func Strip(lat *lattice.Lattice, width int, p Policy) (Result, error) {
	if width < p.MinWidth {
		width = p.MinWidth
	}
	return Compute(lat.ActiveElements(), lat.TotalLength(), width, p)
}
