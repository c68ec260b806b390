package lattice

import "math"

// Element is a single lattice device. K1, K2 and Angle are only read by
// optics engines; the layout engine looks at Length and Kind.
type Element struct {
	Name   string  `yaml:"name" json:"name"`
	Kind   Kind    `yaml:"kind" json:"kind"`
	Length float64 `yaml:"length" json:"length"`
	K1     float64 `yaml:"k1,omitempty" json:"k1,omitempty"`
	K2     float64 `yaml:"k2,omitempty" json:"k2,omitempty"`
	Angle  float64 `yaml:"angle,omitempty" json:"angle,omitempty"`
}

// Curvature returns Angle/Length, or 0 for straight or zero-length elements.
func (e Element) Curvature() float64 {
	if e.Length == 0 {
		return 0
	}
	return e.Angle / e.Length
}

func (e Element) valid() bool {
	return e.Length >= 0 && !math.IsInf(e.Length, 0) && !math.IsNaN(e.Length)
}

// Active is an element that participates in the current window, tagged with
// its index in the full lattice.
type Active struct {
	Index   int
	Element Element
}
