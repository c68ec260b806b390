package viz

import (
	"github.com/san-kum/latviz/internal/analysis"
)

// PortraitCanvas draws a phase portrait on a braille canvas of w x h cells,
// with axes through the origin when it is in view.
func PortraitCanvas(pp *analysis.PhasePortrait, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if pp == nil || len(pp.Points) == 0 {
		return c
	}

	minX, maxX, minY, maxY := pp.Frame()

	dw, dh := c.Dots()
	if minX < 0 && maxX > 0 {
		x := int(-minX / (maxX - minX) * float64(dw-1))
		c.DrawLine(x, 0, x, dh-1)
	}
	if minY < 0 && maxY > 0 {
		y := dh - 1 - int(-minY/(maxY-minY)*float64(dh-1))
		c.DrawLine(0, y, dw-1, y)
	}

	for _, p := range pp.Points {
		c.Plot(p.X, p.XP, minX, maxX, minY, maxY)
	}
	return c
}
