package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/latviz/internal/layout"
)

// stripColumns samples the padded strip so that its element region spans
// exactly the plot's data columns. The left padding is trimmed to fit in
// the plot's label gutter. The result holds one segment index per column,
// -1 for blank.
func stripColumns(res layout.Result, p Plot) []int {
	inner := res.Width() - 2*res.Padding
	if inner <= 0 || p.Width == 0 {
		return nil
	}
	pad := int(math.Round(float64(res.Padding) * float64(p.Width) / float64(inner)))
	cols := res.Sample(p.Width + 2*pad)

	left := min(pad, p.Offset)
	out := make([]int, 0, p.Offset+p.Width+pad)
	for i := 0; i < p.Offset-left; i++ {
		out = append(out, -1)
	}
	return append(out, cols[pad-left:]...)
}

// renderStrip draws one block per column in the colour of its element kind.
func renderStrip(res layout.Result, p Plot) string {
	var b strings.Builder
	for _, seg := range stripColumns(res, p) {
		if seg < 0 {
			b.WriteByte(' ')
			continue
		}
		st := lipgloss.NewStyle().Foreground(layout.Colour(res.Segments[seg].Kind))
		b.WriteString(st.Render("█"))
	}
	return b.String()
}

// renderMarker draws the selection marker under the strip.
func renderMarker(p Plot, s float64, ok bool, st lipgloss.Style) string {
	if !ok {
		return ""
	}
	col, in := p.SToColumn(s)
	if !in {
		return ""
	}
	return strings.Repeat(" ", col) + st.Render("▲")
}
