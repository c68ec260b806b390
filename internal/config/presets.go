package config

import (
	"math"
	"sort"

	"github.com/san-kum/latviz/internal/lattice"
)

// Preset is a built-in periodic cell. Bend angles close the ring when the
// cell is repeated Periods times.
type Preset struct {
	Description string
	Periods     int
	Cell        []lattice.Element
}

func drift(name string, l float64) lattice.Element {
	return lattice.Element{Name: name, Kind: lattice.Drift, Length: l}
}

func quad(name string, l, k1 float64) lattice.Element {
	return lattice.Element{Name: name, Kind: lattice.Quadrupole, Length: l, K1: k1}
}

func bend(name string, l, angle float64) lattice.Element {
	return lattice.Element{Name: name, Kind: lattice.Dipole, Length: l, Angle: angle}
}

func sext(name string, l, k2 float64) lattice.Element {
	return lattice.Element{Name: name, Kind: lattice.Sextupole, Length: l, K2: k2}
}

var Presets = map[string]*Preset{
	"fodo": {
		Description: "FODO cell with two sector bends, 8 periods",
		Periods:     8,
		Cell: []lattice.Element{
			quad("QF", 0.3, 1.2), drift("D1", 0.5), bend("B", 1.0, 2*math.Pi/16), drift("D1", 0.5),
			quad("QD", 0.3, -1.2), drift("D1", 0.5), bend("B", 1.0, 2*math.Pi/16), drift("D1", 0.5),
		},
	},
	"dba": {
		Description: "double-bend achromat cell with chromatic sextupoles, 6 periods",
		Periods:     6,
		Cell: []lattice.Element{
			drift("DL", 2.0), quad("QF1", 0.3, 2.7), drift("D1", 0.3), quad("QD1", 0.3, -2.9),
			drift("D2", 0.5), bend("B", 1.5, 2*math.Pi/12), drift("D3", 0.1),
			sext("SF", 0.2, 20), drift("D4", 0.1), quad("QF2", 0.4, 2.9), drift("D4", 0.1),
			sext("SF", 0.2, 20), drift("D3", 0.1), bend("B", 1.5, 2*math.Pi/12), drift("D2", 0.5),
			quad("QD1", 0.3, -2.9), drift("D1", 0.3), quad("QF1", 0.3, 2.7), drift("DL", 2.0),
		},
	},
	"tba": {
		Description: "triple-bend achromat cell, 8 periods",
		Periods:     8,
		Cell: []lattice.Element{
			drift("DL", 2.0), quad("QF1", 0.3, 2.7), drift("D1", 0.3), quad("QD1", 0.3, -2.9),
			drift("D2", 0.5), bend("B", 1.2, 2*math.Pi/24), drift("D3", 0.3), quad("QC", 0.3, 1.7),
			drift("D3", 0.3), bend("B", 1.2, 2*math.Pi/24), drift("D3", 0.3), quad("QC", 0.3, 1.7),
			drift("D3", 0.3), bend("B", 1.2, 2*math.Pi/24), drift("D2", 0.5), quad("QD1", 0.3, -2.9),
			drift("D1", 0.3), quad("QF1", 0.3, 2.7), drift("DL", 2.0),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Cell = append([]lattice.Element(nil), p.Cell...)
	return &cp
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
