package lattice

import "strings"

// Kind is the display category of an element. It does not affect physics.
type Kind int

const (
	Drift Kind = iota
	Dipole
	Quadrupole
	Sextupole
	Other
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{Drift, Dipole, Quadrupole, Sextupole, Other}

func (k Kind) String() string {
	switch k {
	case Drift:
		return "Drift"
	case Dipole:
		return "Dipole"
	case Quadrupole:
		return "Quadrupole"
	case Sextupole:
		return "Sextupole"
	default:
		return "Other"
	}
}

// ParseKind maps element type keywords (including common MAD-X spellings)
// to a Kind. Unknown keywords map to Other.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drift", "d":
		return Drift
	case "dipole", "sbend", "rbend", "bend", "b":
		return Dipole
	case "quadrupole", "quad", "q":
		return Quadrupole
	case "sextupole", "sext", "s":
		return Sextupole
	default:
		return Other
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(k.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}
