package optics

// Plane selects the transverse plane.
type Plane int

const (
	Horizontal Plane = iota
	Vertical
)

func (p Plane) String() string {
	if p == Vertical {
		return "y"
	}
	return "x"
}

// Vec2 holds a horizontal/vertical pair, or a value and its derivative.
type Vec2 [2]float64

// Summary is the ring-wide part of an engine.
type Summary interface {
	Tune(p Plane) float64
	Chromaticity(p Plane) float64
	// Emittance in m rad.
	Emittance(p Plane) float64
	MomentumCompaction() float64
	// EnergyLossPerTurn in eV.
	EnergyLossPerTurn() float64
	// DampingTimes in seconds, ordered x, y, longitudinal.
	DampingTimes() [3]float64
	DampingPartitions() [3]float64
	EnergySpread() float64
	DispersionAction() float64
	TotalBendAngle() float64
	TotalAbsoluteBendAngle() float64
}

// Arrays is the per-element part of an engine. Every slice has N+1 entries.
type Arrays interface {
	SPositions() []float64
	// Dispersion holds (D, D') per position.
	Dispersion() []Vec2
	Beta() []Vec2
	Alpha() []Vec2
	// PhaseAdvance in radians, cumulative from the lattice entrance.
	PhaseAdvance() []Vec2
	ElementLength(i int) float64
}

// Engine is the external simulation engine.
type Engine interface {
	Summary
	Arrays
	RadiationOff()
	RadiationOn()
	Radiation() bool
}
