package optics

import (
	"math"

	"github.com/san-kum/latviz/internal/lattice"
	"gonum.org/v1/gonum/mat"
)

// focus returns the 2x2 solution of x'' + k x = 0 over length l.
func focus(k, l float64) (c, s, cp, sp float64) {
	switch {
	case k > 0:
		rk := math.Sqrt(k)
		phi := rk * l
		return math.Cos(phi), math.Sin(phi) / rk, -rk * math.Sin(phi), math.Cos(phi)
	case k < 0:
		rk := math.Sqrt(-k)
		phi := rk * l
		return math.Cosh(phi), math.Sinh(phi) / rk, rk * math.Sinh(phi), math.Cosh(phi)
	default:
		return 1, l, 0, 1
	}
}

// focusing returns the linear focusing strengths of e in both planes,
// including the weak focusing of a sector bend. Sextupoles have none.
func focusing(e lattice.Element) (kx, ky float64) {
	if e.Kind == lattice.Sextupole {
		return 0, 0
	}
	h := e.Curvature()
	return e.K1 + h*h, -e.K1
}

// transfer returns the horizontal (x, x', delta) and vertical (y, y')
// matrices of a thick element. Sextupoles are linear drifts.
func transfer(e lattice.Element) (mx, my *mat.Dense) {
	h := e.Curvature()
	kx, ky := focusing(e)

	c, s, cp, sp := focus(kx, e.Length)
	var d, dp float64
	if h != 0 {
		if kx != 0 {
			d = h * (1 - c) / kx
		} else {
			d = h * e.Length * e.Length / 2
		}
		dp = h * s
	}
	mx = mat.NewDense(3, 3, []float64{
		c, s, d,
		cp, sp, dp,
		0, 0, 1,
	})

	c, s, cp, sp = focus(ky, e.Length)
	my = mat.NewDense(2, 2, []float64{
		c, s,
		cp, sp,
	})
	return mx, my
}

type twiss struct {
	beta, alpha float64
}

func (tw twiss) gamma() float64 { return (1 + tw.alpha*tw.alpha) / tw.beta }

// periodic solves for the matched Twiss parameters of a one-turn matrix.
func periodic(m mat.Matrix) (twiss, bool) {
	m11, m12, m22 := m.At(0, 0), m.At(0, 1), m.At(1, 1)
	cosmu := (m11 + m22) / 2
	if math.Abs(cosmu) >= 1 {
		return twiss{}, false
	}
	sinmu := math.Sqrt(1 - cosmu*cosmu)
	if m12 < 0 {
		sinmu = -sinmu
	}
	return twiss{beta: m12 / sinmu, alpha: (m11 - m22) / (2 * sinmu)}, true
}

// propagate maps Twiss parameters through m and returns the phase advance.
func propagate(tw twiss, m mat.Matrix) (twiss, float64) {
	m11, m12, m21, m22 := m.At(0, 0), m.At(0, 1), m.At(1, 0), m.At(1, 1)
	g := tw.gamma()
	out := twiss{
		beta:  m11*m11*tw.beta - 2*m11*m12*tw.alpha + m12*m12*g,
		alpha: -m11*m21*tw.beta + (m11*m22+m12*m21)*tw.alpha - m12*m22*g,
	}
	dmu := math.Atan2(m12, m11*tw.beta-m12*tw.alpha)
	return out, dmu
}

// periodicDispersion solves (D, D') = M (D, D', 1) for the horizontal one-turn matrix.
func periodicDispersion(m mat.Matrix) Vec2 {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m21, m22, m23 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	den := 2 - m11 - m22
	return Vec2{
		((1-m22)*m13 + m12*m23) / den,
		(m21*m13 + (1-m11)*m23) / den,
	}
}
