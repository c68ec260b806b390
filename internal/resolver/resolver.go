package resolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/optics"
)

// Element field names, in display order.
const (
	FieldPosition     = "Selected S Position"
	FieldIndex        = "Element Index"
	FieldStart        = "Element Start S Position"
	FieldLength       = "Element Length"
	FieldDispersion   = "Horizontal Linear Dispersion"
	FieldBeta         = "Beta Function"
	FieldBetaDeriv    = "Derivative of Beta Function"
	FieldPhaseAdvance = "Normalized Phase Advance"
)

var elementFields = []string{
	FieldPosition, FieldIndex, FieldStart, FieldLength,
	FieldDispersion, FieldBeta, FieldBetaDeriv, FieldPhaseAdvance,
}

// ElementFields returns the names produced by Snapshot, in order.
func ElementFields() []string { return append([]string(nil), elementFields...) }

// Location is a resolved coordinate.
type Location struct {
	Position float64
	Active   int // index into the lattice's active elements
	Index    int // global element index, used for engine lookups
	Start    float64
}

type Resolver struct {
	lat *lattice.Lattice
	eng optics.Engine
}

// New switches eng to radiation-off and binds it to lat. Engine arrays must
// be indexed by the global element index of lat.
func New(lat *lattice.Lattice, eng optics.Engine) (*Resolver, error) {
	eng.RadiationOff()
	if n := len(eng.SPositions()); n < lat.Len() {
		return nil, fmt.Errorf("%w: %d positions for %d elements", ErrEngineMismatch, n, lat.Len())
	}
	return &Resolver{lat: lat, eng: eng}, nil
}

func (r *Resolver) Lattice() *lattice.Lattice { return r.lat }
func (r *Resolver) Engine() optics.Engine     { return r.eng }

// Locate finds the greatest active element whose start is <= x. Ties
// between zero-length elements go to the later one.
func (r *Resolver) Locate(x float64) (Location, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Location{}, ErrInvalidPosition
	}
	starts := r.lat.ElementStartPositions()
	if len(starts) == 0 {
		return Location{}, ErrIndexOutOfRange
	}

	i := sort.Search(len(starts), func(i int) bool { return starts[i] > x }) - 1
	if i < 0 {
		i = 0
	}
	return Location{
		Position: x,
		Active:   i,
		Index:    r.lat.Offset() + i,
		Start:    starts[i],
	}, nil
}

// Snapshot returns the optics at x, one field per ElementFields entry.
func (r *Resolver) Snapshot(x float64) ([]format.Field, error) {
	if r.eng.Radiation() {
		return nil, ErrRadiationOn
	}
	loc, err := r.Locate(x)
	if err != nil {
		return nil, err
	}

	g := loc.Index
	s := r.eng.SPositions()
	disp, beta, alpha, mu := r.eng.Dispersion(), r.eng.Beta(), r.eng.Alpha(), r.eng.PhaseAdvance()
	if g >= len(s) || g >= len(disp) || g >= len(beta) || g >= len(alpha) || g >= len(mu) {
		return nil, fmt.Errorf("%w: element %d", ErrIndexOutOfRange, g)
	}

	return []format.Field{
		{Name: FieldPosition, Value: format.Scalar(x)},
		{Name: FieldIndex, Value: format.Integer(g)},
		{Name: FieldStart, Value: format.Scalar(s[g])},
		{Name: FieldLength, Value: format.Scalar(r.eng.ElementLength(g))},
		{Name: FieldDispersion, Value: format.Scalar(disp[g][0])},
		{Name: FieldBeta, Value: format.Floats(beta[g][0], beta[g][1])},
		{Name: FieldBetaDeriv, Value: format.Floats(alpha[g][0], alpha[g][1])},
		{Name: FieldPhaseAdvance, Value: format.Floats(mu[g][0]/(2*math.Pi), mu[g][1]/(2*math.Pi))},
	}, nil
}

// Series returns the longitudinal positions and beta functions spanning the
// active elements, including the exit of the last one.
func (r *Resolver) Series() ([]float64, []optics.Vec2) {
	from := r.lat.Offset()
	to := from + len(r.lat.ActiveElements()) + 1
	s, beta := r.eng.SPositions(), r.eng.Beta()
	if to > len(s) {
		to = len(s)
	}
	if to > len(beta) {
		to = len(beta)
	}
	return s[from:to], beta[from:to]
}
