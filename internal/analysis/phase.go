package analysis

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PhasePortrait holds the turn-by-turn (x, x') points of one particle.
type PhasePortrait struct {
	Start  Point
	Points []Point
}

// GeneratePhasePortrait tracks p0 through the one-turn map.
func GeneratePhasePortrait(m mat.Matrix, p0 Point, turns int) *PhasePortrait {
	return &PhasePortrait{Start: p0, Points: Track(m, p0, turns)}
}

// Invariant returns the Courant-Snyder action 2J = gamma x^2 + 2 alpha x x' + beta x'^2
// of p for the given Twiss parameters. It is constant along a linear orbit.
func Invariant(p Point, beta, alpha float64) float64 {
	gamma := (1 + alpha*alpha) / beta
	return gamma*p.X*p.X + 2*alpha*p.X*p.XP + beta*p.XP*p.XP
}

// Bounds returns the extent of the portrait.
func (pp *PhasePortrait) Bounds() (minX, maxX, minY, maxY float64) {
	if pp == nil || len(pp.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = pp.Points[0].X, pp.Points[0].X
	minY, maxY = pp.Points[0].XP, pp.Points[0].XP
	for _, p := range pp.Points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.XP), math.Max(maxY, p.XP)
	}
	return minX, maxX, minY, maxY
}

// Frame returns the plotting rectangle: the bounds widened by a tenth of
// their span on each side, or by 1 along an axis the orbit does not move in.
func (pp *PhasePortrait) Frame() (x0, x1, y0, y1 float64) {
	x0, x1, y0, y1 = pp.Bounds()
	padX, padY := (x1-x0)*0.1, (y1-y0)*0.1
	if padX == 0 {
		padX = 1
	}
	if padY == 0 {
		padY = 1
	}
	return x0 - padX, x1 + padX, y0 - padY, y1 + padY
}

// cellIndex maps v in [lo, hi] onto 0..n-1.
func cellIndex(v, lo, hi float64, n int) int {
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return max(0, min(n-1, i))
}

// PhasePortraitToASCII draws one character cell per turn, for terminals
// without braille glyphs. Axes are drawn through the origin when it lies
// inside the frame.
func PhasePortraitToASCII(pp *PhasePortrait, width, height int) string {
	if pp == nil || len(pp.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	x0, x1, y0, y1 := pp.Frame()
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := cellIndex(0, x0, x1, width)
	row := height - 1 - cellIndex(0, y0, y1, height)
	if x0 < 0 && x1 > 0 {
		for r := range grid {
			grid[r][col] = '│'
		}
	}
	if y0 < 0 && y1 > 0 {
		for c := range grid[row] {
			if grid[row][c] == '│' {
				grid[row][c] = '┼'
			} else {
				grid[row][c] = '─'
			}
		}
	}

	for _, p := range pp.Points {
		c := cellIndex(p.X, x0, x1, width)
		r := height - 1 - cellIndex(p.XP, y0, y1, height)
		grid[r][c] = '•'
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
