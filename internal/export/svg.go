// Package export writes lattice views as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/layout"
	"github.com/san-kum/latviz/internal/optics"
	"github.com/san-kum/latviz/internal/viz"
)

const (
	background = "#0a0a0a"
	stripPx    = 14
	marginPx   = 6
)

// Series colours match the terminal plot: beta x red, beta y blue.
var seriesColours = [2]string{"#ff4040", "#4080ff"}

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// CanvasToSVG draws every lit braille dot of canvas as a circle.
func CanvasToSVG(canvas *viz.Canvas, scale float64, colour string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", colour)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// OpticsToSVG draws the active elements of lat as a coloured strip above
// the beta functions sampled at s. s and beta come from the same window,
// as returned by resolver.Series.
func OpticsToSVG(lat *lattice.Lattice, s []float64, beta []optics.Vec2, width, height int) string {
	n := min(len(s), len(beta))
	if n < 2 || s[n-1] <= s[0] || width <= 0 || height <= stripPx+2*marginPx {
		return ""
	}
	s0, s1 := s[0], s[n-1]
	w := float64(width)
	xOf := func(v float64) float64 { return (v - s0) / (s1 - s0) * w }

	var sb strings.Builder
	header(&sb, w, float64(height))

	sb.WriteString("<g stroke=\"none\">\n")
	for _, a := range lat.ActiveElements() {
		e := a.Element
		if e.Length <= 0 {
			continue
		}
		start := lat.GlobalStart(a.Index)
		x0 := xOf(max(start, s0))
		x1 := xOf(min(start+e.Length, s1))
		if x1 <= x0 {
			continue
		}
		fmt.Fprintf(&sb, "<rect x=\"%.2f\" y=\"0\" width=\"%.2f\" height=\"%d\" fill=\"%s\"><title>%s</title></rect>\n",
			x0, x1-x0, stripPx, string(layout.Colour(e.Kind)), e.Name)
	}
	sb.WriteString("</g>\n")

	maxY := 0.0
	for _, b := range beta[:n] {
		maxY = max(maxY, b[0], b[1])
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1

	top := float64(stripPx + marginPx)
	plotH := float64(height) - top - marginPx
	for plane := range seriesColours {
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", seriesColours[plane])
		for i := 0; i < n; i++ {
			x := xOf(s[i])
			y := top + plotH - beta[i][plane]/maxY*plotH
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
