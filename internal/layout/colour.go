package layout

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/latviz/internal/lattice"
)

var (
	gray   = lipgloss.Color("#808080")
	green  = lipgloss.Color("#00ff00")
	red    = lipgloss.Color("#ff0000")
	yellow = lipgloss.Color("#ffff00")
	blue   = lipgloss.Color("#0000ff")
)

// Colour returns the strip colour of a kind.
func Colour(k lattice.Kind) lipgloss.Color {
	switch k {
	case lattice.Drift:
		return gray
	case lattice.Dipole:
		return green
	case lattice.Quadrupole:
		return red
	case lattice.Sextupole:
		return yellow
	case lattice.Other:
		return blue
	}
	return blue
}
