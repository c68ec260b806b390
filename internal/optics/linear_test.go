package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/latviz/internal/lattice"
)

const tol = 1e-9

func fodoCell() []lattice.Element {
	angle := 2 * math.Pi / 16
	return []lattice.Element{
		{Name: "QF", Kind: lattice.Quadrupole, Length: 0.3, K1: 1.2},
		{Name: "D1", Kind: lattice.Drift, Length: 0.5},
		{Name: "B1", Kind: lattice.Dipole, Length: 1.0, Angle: angle},
		{Name: "D1", Kind: lattice.Drift, Length: 0.5},
		{Name: "QD", Kind: lattice.Quadrupole, Length: 0.3, K1: -1.2},
		{Name: "D1", Kind: lattice.Drift, Length: 0.5},
		{Name: "B1", Kind: lattice.Dipole, Length: 1.0, Angle: angle},
		{Name: "D1", Kind: lattice.Drift, Length: 0.5},
	}
}

func straightFODO() []lattice.Element {
	return []lattice.Element{
		{Kind: lattice.Quadrupole, Length: 0.5, K1: 0.5},
		{Kind: lattice.Drift, Length: 2},
		{Kind: lattice.Quadrupole, Length: 0.5, K1: -0.5},
		{Kind: lattice.Drift, Length: 2},
	}
}

func TestNewLinear_Errors(t *testing.T) {
	if _, err := NewLinear(nil, 3); !errors.Is(err, ErrEmptyLattice) {
		t.Errorf("expected ErrEmptyLattice, got %v", err)
	}
	drift := []lattice.Element{{Kind: lattice.Drift, Length: 10}}
	if _, err := NewLinear(drift, 3); !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable for a bare drift, got %v", err)
	}
}

func TestLinear_ArrayShape(t *testing.T) {
	cell := fodoCell()
	e, err := NewLinear(cell, 3)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}
	n := len(cell) + 1
	if len(e.SPositions()) != n || len(e.Beta()) != n || len(e.Alpha()) != n ||
		len(e.Dispersion()) != n || len(e.PhaseAdvance()) != n {
		t.Fatalf("expected all arrays to have %d entries", n)
	}
	s := e.SPositions()
	if s[0] != 0 || math.Abs(s[n-1]-4.6) > tol {
		t.Errorf("unexpected s range [%f, %f]", s[0], s[n-1])
	}
	if s[3] != 1.8 {
		t.Errorf("s[3] = %f, want 1.8", s[3])
	}
	if e.ElementLength(2) != 1.0 {
		t.Errorf("ElementLength(2) = %f, want 1.0 (0-based)", e.ElementLength(2))
	}
}

func TestLinear_Periodic(t *testing.T) {
	e, err := NewLinear(fodoCell(), 3)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}
	last := len(e.Beta()) - 1
	for p := 0; p < 2; p++ {
		if math.Abs(e.Beta()[0][p]-e.Beta()[last][p]) > 1e-8 {
			t.Errorf("beta[%d] not periodic: %f vs %f", p, e.Beta()[0][p], e.Beta()[last][p])
		}
		if math.Abs(e.Alpha()[0][p]-e.Alpha()[last][p]) > 1e-8 {
			t.Errorf("alpha[%d] not periodic", p)
		}
	}
	if math.Abs(e.Dispersion()[0][0]-e.Dispersion()[last][0]) > 1e-8 {
		t.Error("dispersion not periodic")
	}
	for i, b := range e.Beta() {
		if b[0] <= 0 || b[1] <= 0 {
			t.Errorf("beta[%d] = %v must be positive", i, b)
		}
	}
}

func TestLinear_TuneMatchesTrace(t *testing.T) {
	e, err := NewLinear(straightFODO(), 3)
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}
	for _, p := range []Plane{Horizontal, Vertical} {
		m := e.OneTurn(p)
		mu := math.Acos((m.At(0, 0) + m.At(1, 1)) / 2)
		if got := e.Tune(p) * 2 * math.Pi; math.Abs(got-mu) > 1e-9 {
			t.Errorf("plane %v: tune*2pi = %f, acos(trace/2) = %f", p, got, mu)
		}
	}
}

func TestLinear_PhaseAdvanceMonotonic(t *testing.T) {
	e, _ := NewLinear(lattice.Repeat(fodoCell(), 8), 3)
	mu := e.PhaseAdvance()
	for i := 1; i < len(mu); i++ {
		if mu[i][0] < mu[i-1][0] || mu[i][1] < mu[i-1][1] {
			t.Fatalf("phase advance decreases at %d", i)
		}
	}
}

func TestLinear_RingScaling(t *testing.T) {
	cell, err := NewLinear(fodoCell(), 3)
	if err != nil {
		t.Fatal(err)
	}
	ring, err := NewLinear(lattice.Repeat(fodoCell(), 8), 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []Plane{Horizontal, Vertical} {
		if math.Abs(ring.Tune(p)-8*cell.Tune(p)) > 1e-8 {
			t.Errorf("ring tune %f != 8 * cell tune %f", ring.Tune(p), cell.Tune(p))
		}
		if math.Abs(ring.Chromaticity(p)-8*cell.Chromaticity(p)) > 1e-8 {
			t.Errorf("ring chromaticity %f != 8 * cell %f", ring.Chromaticity(p), cell.Chromaticity(p))
		}
	}
	if math.Abs(ring.TotalBendAngle()-2*math.Pi) > 1e-12 {
		t.Errorf("total bend = %f, want 2pi", ring.TotalBendAngle())
	}
	if ring.TotalAbsoluteBendAngle() != ring.TotalBendAngle() {
		t.Error("all bends positive: absolute bend should equal bend")
	}
}

func TestLinear_Chromaticity(t *testing.T) {
	e, _ := NewLinear(straightFODO(), 3)
	if e.Chromaticity(Horizontal) >= 0 || e.Chromaticity(Vertical) >= 0 {
		t.Errorf("natural chromaticity should be negative, got %f %f",
			e.Chromaticity(Horizontal), e.Chromaticity(Vertical))
	}
}

func TestLinear_ChromaticityWeakFocusing(t *testing.T) {
	// Gradient bends with K1 = -h^2/2 focus equally in both planes, so
	// beta = 1/sqrt(k) everywhere and xi = -Q/2 with Q = rho*sqrt(k).
	const (
		rho = 10.0
		n   = 16
	)
	h := 1 / rho
	k := h * h / 2
	ring := make([]lattice.Element, n)
	for i := range ring {
		ring[i] = lattice.Element{
			Name: "B", Kind: lattice.Dipole,
			Length: 2 * math.Pi * rho / n, Angle: 2 * math.Pi / n, K1: -k,
		}
	}

	e, err := NewLinear(ring, 3)
	if err != nil {
		t.Fatal(err)
	}
	q := rho * math.Sqrt(k)
	for _, p := range []Plane{Horizontal, Vertical} {
		if got := e.Tune(p); math.Abs(got-q) > 1e-9 {
			t.Errorf("plane %v: tune %v, want %v", p, got, q)
		}
		if got := e.Chromaticity(p); math.Abs(got+q/2) > 1e-9 {
			t.Errorf("plane %v: chromaticity %v, want %v", p, got, -q/2)
		}
	}
}

func TestLinear_RadiationIntegrals(t *testing.T) {
	const energy = 3.0
	e, err := NewLinear(lattice.Repeat(fodoCell(), 8), energy)
	if err != nil {
		t.Fatal(err)
	}

	h := 2 * math.Pi / 16
	wantU0 := cGamma * math.Pow(energy, 4) * h * 1e9
	if got := e.EnergyLossPerTurn(); math.Abs(got-wantU0)/wantU0 > 1e-9 {
		t.Errorf("U0 = %f eV, want %f", got, wantU0)
	}

	j := e.DampingPartitions()
	if math.Abs(j[0]+j[1]+j[2]-4) > 1e-12 {
		t.Errorf("partition numbers %v must sum to 4", j)
	}
	if e.MomentumCompaction() <= 0 {
		t.Errorf("momentum compaction %g should be positive", e.MomentumCompaction())
	}
	if e.Emittance(Horizontal) <= 0 || e.Emittance(Vertical) != 0 {
		t.Errorf("unexpected emittances %g %g", e.Emittance(Horizontal), e.Emittance(Vertical))
	}
	for i, tau := range e.DampingTimes() {
		if tau <= 0 {
			t.Errorf("damping time %d = %g, want > 0", i, tau)
		}
	}
	if e.EnergySpread() <= 0 || e.DispersionAction() <= 0 {
		t.Error("energy spread and dispersion action should be positive with bends")
	}
}

func TestLinear_NoBends(t *testing.T) {
	e, _ := NewLinear(straightFODO(), 3)
	for i, d := range e.Dispersion() {
		if d[0] != 0 || d[1] != 0 {
			t.Fatalf("dispersion[%d] = %v, want zero", i, d)
		}
	}
	if e.EnergyLossPerTurn() != 0 || e.Emittance(Horizontal) != 0 || e.DampingTimes() != [3]float64{} {
		t.Error("radiation quantities must vanish without bends")
	}
}

func TestLinear_RadiationState(t *testing.T) {
	e, _ := NewLinear(straightFODO(), 3)
	if !e.Radiation() {
		t.Error("engine should start with radiation on")
	}
	e.RadiationOff()
	if e.Radiation() {
		t.Error("RadiationOff did not disable radiation")
	}
	e.RadiationOn()
	if !e.Radiation() {
		t.Error("RadiationOn did not enable radiation")
	}
}
