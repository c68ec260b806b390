package latfile

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/san-kum/latviz/internal/lattice"
)

// File is a loaded lattice: the beamline name and its flattened elements.
type File struct {
	Name     string            `yaml:"name"`
	Elements []lattice.Element `yaml:"elements"`
}

type scope struct {
	vars  map[string]float64
	elems map[string]lattice.Element
	lines map[string]*lineDef
}

func key(name string) string { return strings.ToUpper(name) }

func newScope() *scope {
	return &scope{
		vars: map[string]float64{
			"PI":    math.Pi,
			"TWOPI": 2 * math.Pi,
			"E":     math.E,
		},
		elems: make(map[string]lattice.Element),
		lines: make(map[string]*lineDef),
	}
}

func expand(f *file) (*File, error) {
	sc := newScope()
	use := ""
	last := ""

	for _, st := range f.Statements {
		switch {
		case st.Use != nil:
			use = st.Use.Name
		case st.Assign != nil:
			v, err := sc.eval(st.Assign.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Assign.Name, err)
			}
			sc.vars[key(st.Assign.Name)] = v
		case st.Line != nil:
			sc.lines[key(st.Line.Name)] = st.Line
			last = st.Line.Name
		case st.Elem != nil:
			e, err := sc.define(st.Elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Elem.Name, err)
			}
			sc.elems[key(e.Name)] = e
		}
	}

	name := use
	if name == "" {
		name = last
	}
	if name == "" {
		return nil, ErrNoBeamline
	}
	if _, ok := sc.lines[key(name)]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLine, name)
	}
	elems, err := sc.flatten(name, nil)
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Elements: elems}, nil
}

func (sc *scope) define(d *elemDef) (lattice.Element, error) {
	e, inherited := sc.elems[key(d.Class)]
	if !inherited {
		e = lattice.Element{Kind: lattice.ParseKind(d.Class)}
	}
	e.Name = d.Name

	for _, a := range d.Attrs {
		v, err := sc.eval(a.Value)
		if err != nil {
			return e, fmt.Errorf("%s: %w", a.Key, err)
		}
		switch key(a.Key) {
		case "L":
			e.Length = v
		case "K1":
			e.K1 = v
		case "K2":
			e.K2 = v
		case "ANGLE":
			e.Angle = v
		}
	}
	return e, nil
}

// flatten expands a line depth first. stack holds the lines being expanded.
func (sc *scope) flatten(name string, stack []string) ([]lattice.Element, error) {
	k := key(name)
	if slices.Contains(stack, k) {
		return nil, fmt.Errorf("%w: %s", ErrRecursiveLine, strings.Join(append(stack, k), " -> "))
	}
	line := sc.lines[k]
	stack = append(stack, k)

	var out []lattice.Element
	for _, it := range line.Items {
		var seq []lattice.Element
		if _, ok := sc.lines[key(it.Name)]; ok {
			sub, err := sc.flatten(it.Name, stack)
			if err != nil {
				return nil, err
			}
			seq = sub
		} else if e, ok := sc.elems[key(it.Name)]; ok {
			seq = []lattice.Element{e}
		} else {
			return nil, fmt.Errorf("%w %q in line %s", ErrUnknownElement, it.Name, name)
		}

		if it.Reverse {
			seq = slices.Clone(seq)
			slices.Reverse(seq)
		}
		n := max(it.Count, 1)
		for i := 0; i < n; i++ {
			out = append(out, seq...)
		}
	}
	return out, nil
}

func (sc *scope) eval(x *expr) (float64, error) {
	v, err := sc.term(x.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		w, err := sc.term(r.Term)
		if err != nil {
			return 0, err
		}
		if r.Op == "+" {
			v += w
		} else {
			v -= w
		}
	}
	return v, nil
}

func (sc *scope) term(t *term) (float64, error) {
	v, err := sc.factor(t.Left)
	if err != nil {
		return 0, err
	}
	for _, r := range t.Right {
		w, err := sc.factor(r.Factor)
		if err != nil {
			return 0, err
		}
		if r.Op == "*" {
			v *= w
		} else {
			v /= w
		}
	}
	return v, nil
}

func (sc *scope) factor(f *factor) (float64, error) {
	var v float64
	switch {
	case f.Number != nil:
		v = *f.Number
	case f.Symbol != nil:
		var ok bool
		if v, ok = sc.vars[key(*f.Symbol)]; !ok {
			return 0, fmt.Errorf("%w %q", ErrUndefinedSymbol, *f.Symbol)
		}
	case f.Sub != nil:
		var err error
		if v, err = sc.eval(f.Sub); err != nil {
			return 0, err
		}
	}
	if f.Neg {
		v = -v
	}
	return v, nil
}
