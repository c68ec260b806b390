// Package selection tracks the selected longitudinal position and derives
// every dependent display field from it.
//
// The machine stores only the position. The element index, the marker and
// all field values are recomputed from that position on every read, so a
// field can never outlive the selection it belongs to.
//
// A Machine is not safe for concurrent use; mutate it from one event loop.
package selection

import (
	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/resolver"
)

// Button identifies the pointer button of a click.
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
	ButtonMiddle
)

// Click is a pointer press on the plot. InPlot is false when the pointer was
// outside the plot's coordinate range, in which case X is meaningless.
type Click struct {
	X      float64
	InPlot bool
	Button Button
}

type State int

const (
	Unselected State = iota
	Selected
)

func (s State) String() string {
	if s == Selected {
		return "selected"
	}
	return "unselected"
}

// Selection is the whole persistent state: an optional position.
type Selection struct {
	Position float64
	Valid    bool
}

// View is everything the presentation layer draws for a selection.
type View struct {
	Marker    float64
	HasMarker bool
	Fields    []format.Row
	Info      []format.Row
}

// Render is the pure mapping from a selection to its view. Every field
// starts as a placeholder and is repopulated only when resolution succeeds.
func Render(sel Selection, r *resolver.Resolver) View {
	v := View{
		Fields: format.Placeholders(resolver.ElementFields()),
		Info:   format.Placeholders(resolver.InfoFields()),
	}
	if !sel.Valid {
		return v
	}
	fields, err := r.Snapshot(sel.Position)
	if err != nil {
		return v
	}
	info, err := r.Info(sel.Position)
	if err != nil {
		return v
	}
	v.Marker, v.HasMarker = sel.Position, true
	v.Fields = format.Rows(fields)
	v.Info = info
	return v
}

type Machine struct {
	r   *resolver.Resolver
	sel Selection
}

// New returns a machine in the Unselected state.
func New(r *resolver.Resolver) *Machine {
	return &Machine{r: r}
}

// Handle applies a click. changed reports whether a transition happened.
// A primary click that cannot be resolved leaves the machine Unselected and
// returns the resolver error.
func (m *Machine) Handle(c Click) (changed bool, err error) {
	if !c.InPlot {
		return false, nil
	}

	m.sel = Selection{}
	if c.Button != ButtonPrimary {
		return true, nil
	}
	if _, err := m.r.Snapshot(c.X); err != nil {
		return true, err
	}
	m.sel = Selection{Position: c.X, Valid: true}
	return true, nil
}

// Clear returns to Unselected.
func (m *Machine) Clear() { m.sel = Selection{} }

func (m *Machine) State() State {
	if m.sel.Valid {
		return Selected
	}
	return Unselected
}

func (m *Machine) Selection() Selection { return m.sel }

// ElementIndex resolves the global index of the selected element.
func (m *Machine) ElementIndex() (int, bool) {
	if !m.sel.Valid {
		return 0, false
	}
	loc, err := m.r.Locate(m.sel.Position)
	if err != nil {
		return 0, false
	}
	return loc.Index, true
}

// View renders the current selection.
func (m *Machine) View() View { return Render(m.sel, m.r) }
