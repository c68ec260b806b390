package resolver

import (
	"strconv"

	"github.com/san-kum/latviz/internal/format"
)

var infoFields = []string{"Index", "Type", "Length", "Name"}

// InfoFields returns the names produced by Info, in order.
func InfoFields() []string { return append([]string(nil), infoFields...) }

// Info describes the element under x as read from the lattice itself.
func (r *Resolver) Info(x float64) ([]format.Row, error) {
	loc, err := r.Locate(x)
	if err != nil {
		return nil, err
	}
	el := r.lat.Element(loc.Index)
	name := el.Name
	if name == "" {
		name = format.Placeholder
	}
	return []format.Row{
		{Name: "Index", Text: strconv.Itoa(loc.Index)},
		{Name: "Type", Text: el.Kind.String()},
		{Name: "Length", Text: format.Float(el.Length).String()},
		{Name: "Name", Text: name},
	}, nil
}
