package viz

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/latviz/internal/resolver"
)

var errEmptySeries = errors.New("viz: no optics to plot")

// Plot is a rendered beta-function graph together with the geometry that
// maps terminal columns back to longitudinal position.
type Plot struct {
	Text     string
	Offset   int // columns left of the first data column
	Width    int // data columns
	Top      int // first data row within Text
	Rows     int // data rows
	From, To float64
}

// BetaPlot renders the horizontal and vertical beta functions across the
// active window with width data columns and height rows.
func BetaPlot(r *resolver.Resolver, width, height int) (Plot, error) {
	s, beta := r.Series()
	if len(s) < 2 || s[len(s)-1] <= s[0] {
		return Plot{}, errEmptySeries
	}
	width = max(width, 2)
	height = max(height, 2)

	bx := make([]float64, len(beta))
	by := make([]float64, len(beta))
	for i, b := range beta {
		bx[i], by[i] = b[0], b[1]
	}

	p := Plot{Width: width, From: s[0], To: s[len(s)-1]}
	xs := make([]float64, width)
	for c := range xs {
		xs[c] = p.columnCentre(c)
	}

	p.Text = asciigraph.PlotMany(
		[][]float64{resample(s, bx, xs), resample(s, by, xs)},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption("beta x (red), beta y (blue) [m] vs s"),
	)
	p.Offset, p.Top, p.Rows = axisGeometry(p.Text)
	return p, nil
}

// axisGeometry finds the y axis in a rendered graph. Data starts in the
// column after the axis glyph.
func axisGeometry(text string) (offset, top, rows int) {
	top = -1
	for i, line := range strings.Split(ansi.Strip(text), "\n") {
		idx := strings.IndexAny(line, "┤┼")
		if idx < 0 {
			continue
		}
		if top < 0 {
			top = i
			offset = len([]rune(line[:idx])) + 1
		}
		rows++
	}
	return offset, max(top, 0), rows
}

func (p Plot) columnCentre(c int) float64 {
	return p.From + (float64(c)+0.5)*(p.To-p.From)/float64(p.Width)
}

// ColumnToS converts a terminal column to a position. ok is false outside
// the data columns.
func (p Plot) ColumnToS(col int) (float64, bool) {
	c := col - p.Offset
	if p.Width == 0 || c < 0 || c >= p.Width {
		return 0, false
	}
	return p.columnCentre(c), true
}

// SToColumn is the inverse of ColumnToS.
func (p Plot) SToColumn(s float64) (int, bool) {
	if p.Width == 0 || s < p.From || s > p.To {
		return 0, false
	}
	c := int((s - p.From) / (p.To - p.From) * float64(p.Width))
	return p.Offset + min(c, p.Width-1), true
}

// resample interpolates y(s) linearly at each of xs.
func resample(s, y, xs []float64) []float64 {
	out := make([]float64, len(xs))
	last := len(s) - 1
	for j, x := range xs {
		i := sort.Search(len(s), func(k int) bool { return s[k] > x }) - 1
		i = max(0, min(i, last-1))
		ds := s[i+1] - s[i]
		if ds <= 0 {
			out[j] = y[i]
			continue
		}
		t := math.Max(0, math.Min(1, (x-s[i])/ds))
		out[j] = y[i] + t*(y[i+1]-y[i])
	}
	return out
}
