package storage

import (
	"math"

	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/optics"
)

// ExitName labels the row holding the optics at the exit of the last element.
const ExitName = "$END"

// OpticsRow holds the optics at the entrance of one element. Phase advances
// are in units of 2pi.
type OpticsRow struct {
	Index  int     `msgpack:"index"`
	Name   string  `msgpack:"name"`
	Kind   string  `msgpack:"kind"`
	S      float64 `msgpack:"s"`
	Length float64 `msgpack:"length"`
	BetaX  float64 `msgpack:"betx"`
	BetaY  float64 `msgpack:"bety"`
	AlphaX float64 `msgpack:"alfx"`
	AlphaY float64 `msgpack:"alfy"`
	DispX  float64 `msgpack:"dx"`
	DispPX float64 `msgpack:"dpx"`
	MuX    float64 `msgpack:"mux"`
	MuY    float64 `msgpack:"muy"`
}

// Table is the per-element optics of the active window plus its exit.
type Table struct {
	Rows []OpticsRow `msgpack:"rows"`
}

var tableHeader = []string{
	"index", "name", "kind", "s", "length",
	"betx", "bety", "alfx", "alfy", "dx", "dpx", "mux", "muy",
}

// BuildTable samples eng at every active element of lat.
func BuildTable(lat *lattice.Lattice, eng optics.Engine) *Table {
	s, beta, alpha := eng.SPositions(), eng.Beta(), eng.Alpha()
	disp, mu := eng.Dispersion(), eng.PhaseAdvance()

	row := func(g int) OpticsRow {
		return OpticsRow{
			Index:  g,
			S:      s[g],
			BetaX:  beta[g][0],
			BetaY:  beta[g][1],
			AlphaX: alpha[g][0],
			AlphaY: alpha[g][1],
			DispX:  disp[g][0],
			DispPX: disp[g][1],
			MuX:    mu[g][0] / (2 * math.Pi),
			MuY:    mu[g][1] / (2 * math.Pi),
		}
	}

	active := lat.ActiveElements()
	t := &Table{Rows: make([]OpticsRow, 0, len(active)+1)}
	for _, a := range active {
		r := row(a.Index)
		r.Name = a.Element.Name
		r.Kind = a.Element.Kind.String()
		r.Length = a.Element.Length
		t.Rows = append(t.Rows, r)
	}
	if len(active) > 0 {
		exit := active[len(active)-1].Index + 1
		if exit < len(s) {
			r := row(exit)
			r.Name = ExitName
			t.Rows = append(t.Rows, r)
		}
	}
	return t
}

// Column returns one numeric column by its CSV header name.
func (t *Table) Column(name string) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, r := range t.Rows {
		v, ok := r.field(name)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (r OpticsRow) field(name string) (float64, bool) {
	switch name {
	case "index":
		return float64(r.Index), true
	case "s":
		return r.S, true
	case "length":
		return r.Length, true
	case "betx":
		return r.BetaX, true
	case "bety":
		return r.BetaY, true
	case "alfx":
		return r.AlphaX, true
	case "alfy":
		return r.AlphaY, true
	case "dx":
		return r.DispX, true
	case "dpx":
		return r.DispPX, true
	case "mux":
		return r.MuX, true
	case "muy":
		return r.MuY, true
	}
	return 0, false
}
