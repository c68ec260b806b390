package analysis

import (
	"gonum.org/v1/gonum/mat"
)

// Point is a transverse phase-space coordinate (x, x').
type Point struct {
	X, XP float64
}

// Track applies the 2x2 linear map m to p0 for the given number of turns and
// returns the coordinates after each turn. Larger matrices contribute only
// their upper-left block, which is the on-momentum map.
func Track(m mat.Matrix, p0 Point, turns int) []Point {
	if turns <= 0 {
		return nil
	}
	block := mat.NewDense(2, 2, []float64{
		m.At(0, 0), m.At(0, 1),
		m.At(1, 0), m.At(1, 1),
	})

	out := make([]Point, 0, turns)
	v := mat.NewVecDense(2, []float64{p0.X, p0.XP})
	next := mat.NewVecDense(2, nil)
	for i := 0; i < turns; i++ {
		next.MulVec(block, v)
		v, next = next, v
		out = append(out, Point{X: v.AtVec(0), XP: v.AtVec(1)})
	}
	return out
}

// Positions extracts the X coordinates.
func Positions(pts []Point) []float64 {
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	return xs
}
