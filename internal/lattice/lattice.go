package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const windowTolerance = 1e-9

// Lattice is an ordered, immutable element sequence with an optional window.
type Lattice struct {
	elements []Element
	starts   []float64 // global start of every element, len(elements)+1

	windowed   bool
	start, end float64
	first      int // global index of first active element
	active     []Active
	total      float64
}

// New builds a lattice from elements in physical order. The slice is copied.
func New(elements []Element) (*Lattice, error) {
	if len(elements) == 0 {
		return nil, ErrEmptyLattice
	}
	elems := make([]Element, len(elements))
	lengths := make([]float64, len(elements)+1)
	for i, e := range elements {
		if !e.valid() {
			return nil, fmt.Errorf("element %d (%s): %w", i, e.Name, ErrNegativeLength)
		}
		elems[i] = e
		lengths[i+1] = e.Length
	}

	l := &Lattice{
		elements: elems,
		starts:   floats.CumSum(make([]float64, len(lengths)), lengths),
	}
	l.ClearWindow()
	return l, nil
}

// Repeat returns the cell elements concatenated n times.
func Repeat(cell []Element, n int) []Element {
	if n < 1 {
		n = 1
	}
	out := make([]Element, 0, len(cell)*n)
	for i := 0; i < n; i++ {
		out = append(out, cell...)
	}
	return out
}

// Superperiod returns the bounds of the n-th (1-based) of count equal slices
// of a ring with the given total length.
func Superperiod(total float64, n, count int) (start, end float64) {
	size := total / float64(count)
	return size * float64(n-1), size * float64(n)
}

// Len returns the number of elements in the full lattice.
func (l *Lattice) Len() int { return len(l.elements) }

// Element returns the element at a global index.
func (l *Lattice) Element(i int) Element { return l.elements[i] }

// Elements returns a copy of the full element sequence.
func (l *Lattice) Elements() []Element {
	out := make([]Element, len(l.elements))
	copy(out, l.elements)
	return out
}

// Length returns the length of the full lattice, ignoring the window.
func (l *Lattice) Length() float64 { return l.starts[len(l.elements)] }

// GlobalStart returns the longitudinal start of the element at global index i.
func (l *Lattice) GlobalStart(i int) float64 { return l.starts[i] }

// Window reports the current window. ok is false when the whole lattice is active.
func (l *Lattice) Window() (start, end float64, ok bool) {
	return l.start, l.end, l.windowed
}

// SetWindow restricts the active elements to those intersecting [start, end).
// On error the previous window is kept.
func (l *Lattice) SetWindow(start, end float64) error {
	if !(start < end) {
		return &WindowError{Start: start, End: end, Err: ErrInvalidWindow}
	}

	// edges closer than tol coincide
	tol := windowTolerance * l.Length()

	var active []Active
	for i, e := range l.elements {
		s := l.starts[i]
		in := min(s+e.Length, end)-max(s, start) > tol
		if e.Length == 0 {
			in = s >= start-tol && s < end-tol
		}
		if in {
			active = append(active, Active{Index: i, Element: e})
		}
	}
	if len(active) == 0 {
		return &WindowError{Start: start, End: end, Err: ErrInvalidWindow}
	}

	l.windowed, l.start, l.end = true, start, end
	l.setActive(active)
	return nil
}

// ClearWindow makes every element active again.
func (l *Lattice) ClearWindow() {
	active := make([]Active, len(l.elements))
	for i, e := range l.elements {
		active[i] = Active{Index: i, Element: e}
	}
	l.windowed, l.start, l.end = false, 0, l.Length()
	l.setActive(active)
}

func (l *Lattice) setActive(active []Active) {
	l.active = active
	l.first = active[0].Index
	l.total = 0
	for _, a := range active {
		l.total += a.Element.Length
	}
}

// ActiveElements returns the elements participating in the window, in
// global index order.
func (l *Lattice) ActiveElements() []Active {
	out := make([]Active, len(l.active))
	copy(out, l.active)
	return out
}

// Offset returns the global index of the first active element.
func (l *Lattice) Offset() int { return l.first }

// TotalLength returns the summed length of the active elements.
func (l *Lattice) TotalLength() float64 { return l.total }

// ElementStartPositions returns the global start coordinate of each active
// element. The result is non-decreasing.
func (l *Lattice) ElementStartPositions() []float64 {
	out := make([]float64, len(l.active))
	for i, a := range l.active {
		out[i] = l.starts[a.Index]
	}
	return out
}
