package optics

import (
	"fmt"
	"math"

	"github.com/san-kum/latviz/internal/lattice"
	"gonum.org/v1/gonum/mat"
)

const (
	electronMassGeV = 0.51099895e-3
	speedOfLight    = 299792458.0
	// Sands' radiation constants for electrons.
	cGamma = 8.846e-5   // m / GeV^3
	cQ     = 3.8319e-13 // m
)

// Linear is the reference engine: uncoupled linear optics of a ring built
// from the element list.
type Linear struct {
	elems     []lattice.Element
	energy    float64 // GeV
	radiation bool

	s     []float64
	beta  []Vec2
	alpha []Vec2
	mu    []Vec2
	disp  []Vec2

	oneTurn [2]*mat.Dense
	tune    Vec2
	chrom   Vec2

	i1, i2, i3, i4, i5 float64
	bend, absBend      float64
}

var _ Engine = (*Linear)(nil)

// NewLinear computes the periodic optics of elems at the given beam energy.
// The engine starts with radiation on.
func NewLinear(elems []lattice.Element, energyGeV float64) (*Linear, error) {
	if len(elems) == 0 {
		return nil, ErrEmptyLattice
	}
	e := &Linear{
		elems:     append([]lattice.Element(nil), elems...),
		energy:    energyGeV,
		radiation: true,
	}
	if err := e.compute(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Linear) compute() error {
	n := len(e.elems)
	mxs := make([]*mat.Dense, n)
	mys := make([]*mat.Dense, n)

	mx := eye(3)
	my := eye(2)
	for i, el := range e.elems {
		mxs[i], mys[i] = transfer(el)
		var tx, ty mat.Dense
		tx.Mul(mxs[i], mx)
		ty.Mul(mys[i], my)
		mx, my = &tx, &ty
	}
	e.oneTurn = [2]*mat.Dense{mx, my}

	twx, ok := periodic(mx)
	if !ok {
		return fmt.Errorf("%w (plane x, trace %.4f)", ErrUnstable, mx.At(0, 0)+mx.At(1, 1))
	}
	twy, ok := periodic(my)
	if !ok {
		return fmt.Errorf("%w (plane y, trace %.4f)", ErrUnstable, my.At(0, 0)+my.At(1, 1))
	}
	d := periodicDispersion(mx)

	e.s = make([]float64, n+1)
	e.beta = make([]Vec2, n+1)
	e.alpha = make([]Vec2, n+1)
	e.mu = make([]Vec2, n+1)
	e.disp = make([]Vec2, n+1)

	var pos, mux, muy float64
	var chromX, chromY float64
	for i, el := range e.elems {
		e.s[i] = pos
		e.beta[i] = Vec2{twx.beta, twy.beta}
		e.alpha[i] = Vec2{twx.alpha, twy.alpha}
		e.mu[i] = Vec2{mux, muy}
		e.disp[i] = d

		nx, dmx := propagate(twx, mxs[i])
		ny, dmy := propagate(twy, mys[i])
		nd := Vec2{
			mxs[i].At(0, 0)*d[0] + mxs[i].At(0, 1)*d[1] + mxs[i].At(0, 2),
			mxs[i].At(1, 0)*d[0] + mxs[i].At(1, 1)*d[1] + mxs[i].At(1, 2),
		}

		l := el.Length
		bx := (twx.beta + nx.beta) / 2
		by := (twy.beta + ny.beta) / 2
		dAvg := (d[0] + nd[0]) / 2
		kx, ky := focusing(el)
		chromX += -bx * (kx - el.K2*dAvg) * l
		chromY += -by * (ky + el.K2*dAvg) * l

		if h := el.Curvature(); h != 0 {
			hIn := curlyH(twx, d)
			hOut := curlyH(nx, nd)
			ah := math.Abs(h)
			e.i1 += dAvg * h * l
			e.i2 += h * h * l
			e.i3 += ah * ah * ah * l
			e.i4 += dAvg * h * (h*h + 2*el.K1) * l
			e.i5 += (hIn + hOut) / 2 * ah * ah * ah * l
		}
		e.bend += el.Angle
		e.absBend += math.Abs(el.Angle)

		twx, twy, d = nx, ny, nd
		pos += l
		mux += dmx
		muy += dmy
	}
	e.s[n] = pos
	e.beta[n] = Vec2{twx.beta, twy.beta}
	e.alpha[n] = Vec2{twx.alpha, twy.alpha}
	e.mu[n] = Vec2{mux, muy}
	e.disp[n] = d

	e.tune = Vec2{mux / (2 * math.Pi), muy / (2 * math.Pi)}
	e.chrom = Vec2{chromX / (4 * math.Pi), chromY / (4 * math.Pi)}
	return nil
}

func curlyH(tw twiss, d Vec2) float64 {
	return tw.gamma()*d[0]*d[0] + 2*tw.alpha*d[0]*d[1] + tw.beta*d[1]*d[1]
}

func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func (e *Linear) RadiationOff()   { e.radiation = false }
func (e *Linear) RadiationOn()    { e.radiation = true }
func (e *Linear) Radiation() bool { return e.radiation }

// OneTurn returns a copy of the 2x2 one-turn matrix of a plane.
func (e *Linear) OneTurn(p Plane) *mat.Dense {
	return mat.DenseCopyOf(e.oneTurn[p].Slice(0, 2, 0, 2))
}

func (e *Linear) Tune(p Plane) float64         { return e.tune[p] }
func (e *Linear) Chromaticity(p Plane) float64 { return e.chrom[p] }

func (e *Linear) gamma() float64 { return e.energy / electronMassGeV }

func (e *Linear) Emittance(p Plane) float64 {
	j := e.DampingPartitions()
	if p == Vertical || e.i2 == 0 || j[0] <= 0 {
		return 0
	}
	g := e.gamma()
	return cQ * g * g * e.i5 / (j[0] * e.i2)
}

func (e *Linear) circumference() float64 { return e.s[len(e.s)-1] }

func (e *Linear) MomentumCompaction() float64 {
	if e.circumference() == 0 {
		return 0
	}
	return e.i1 / e.circumference()
}

func (e *Linear) energyLossGeV() float64 {
	return cGamma / (2 * math.Pi) * math.Pow(e.energy, 4) * e.i2
}

func (e *Linear) EnergyLossPerTurn() float64 { return e.energyLossGeV() * 1e9 }

func (e *Linear) DampingPartitions() [3]float64 {
	if e.i2 == 0 {
		return [3]float64{}
	}
	r := e.i4 / e.i2
	return [3]float64{1 - r, 1, 2 + r}
}

func (e *Linear) DampingTimes() [3]float64 {
	var out [3]float64
	u0 := e.energyLossGeV()
	if u0 == 0 {
		return out
	}
	t0 := e.circumference() / speedOfLight
	for i, j := range e.DampingPartitions() {
		if j != 0 {
			out[i] = 2 * e.energy * t0 / (j * u0)
		}
	}
	return out
}

func (e *Linear) EnergySpread() float64 {
	jz := e.DampingPartitions()[2]
	if e.i2 == 0 || jz <= 0 {
		return 0
	}
	g := e.gamma()
	return math.Sqrt(cQ * g * g * e.i3 / (jz * e.i2))
}

// DispersionAction is the curly-H function averaged over the dipoles,
// weighted by |h|^3.
func (e *Linear) DispersionAction() float64 {
	if e.i3 == 0 {
		return 0
	}
	return e.i5 / e.i3
}

func (e *Linear) TotalBendAngle() float64         { return e.bend }
func (e *Linear) TotalAbsoluteBendAngle() float64 { return e.absBend }

func (e *Linear) SPositions() []float64 { return e.s }
func (e *Linear) Dispersion() []Vec2    { return e.disp }
func (e *Linear) Beta() []Vec2          { return e.beta }
func (e *Linear) Alpha() []Vec2         { return e.alpha }
func (e *Linear) PhaseAdvance() []Vec2  { return e.mu }

func (e *Linear) ElementLength(i int) float64 { return e.elems[i].Length }
