// Package viz provides the terminal presentation layer for lattice optics.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: lattice strip, beta-function plot and parameter sidebar
//   - [Canvas]: Braille-based pixel canvas used for phase portraits
//   - [BetaPlot]: asciigraph rendering of the beta functions over s
//
// # Mouse
//
// A left click inside the plot selects the element under the pointer and
// fills the sidebar. Any other button clears the selection. Clicks outside
// the plot are ignored.
//
// # Key Bindings
//
//	h/l, ←/→  - Step the selection to the previous/next element
//	0-9       - Show a single super period (0 = whole ring)
//	esc       - Clear the selection
//	t         - Cycle color themes
//	?         - Toggle help
//	q         - Quit
package viz
