package resolver

import (
	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/optics"
)

const (
	TitleLattice     = "Global Lattice Parameters"
	TitleSuperperiod = "Global Super Period Parameters"
	TitleElement     = "Selected Element Parameters"
)

// SummaryTitle names the global parameter block for the current window.
func (r *Resolver) SummaryTitle() string {
	if _, _, ok := r.lat.Window(); ok {
		return TitleSuperperiod
	}
	return TitleLattice
}

// Summary returns the global lattice parameters. Emittance is in pm rad,
// energy loss in eV and damping times in ms.
func (r *Resolver) Summary() ([]format.Field, error) {
	if r.eng.Radiation() {
		return nil, ErrRadiationOn
	}
	e := r.eng
	tau := e.DampingTimes()
	j := e.DampingPartitions()

	return []format.Field{
		{Name: "Number of Elements", Value: format.Integer(len(r.lat.ActiveElements()))},
		{Name: "Total Length", Value: format.Scalar(r.lat.TotalLength())},
		{Name: "Cell Tune", Value: format.Floats(e.Tune(optics.Horizontal), e.Tune(optics.Vertical))},
		{Name: "Linear Chromaticity", Value: format.Floats(e.Chromaticity(optics.Horizontal), e.Chromaticity(optics.Vertical))},
		{Name: "Horizontal Emittance", Value: format.Scalar(e.Emittance(optics.Horizontal) * 1e12)},
		{Name: "Linear Dispersion Action", Value: format.Scalar(e.DispersionAction())},
		{Name: "Momentum Spread", Value: format.Scalar(e.EnergySpread())},
		{Name: "Linear Momentum Compaction", Value: format.Scalar(e.MomentumCompaction())},
		{Name: "Energy Loss per Turn", Value: format.Scalar(e.EnergyLossPerTurn())},
		{Name: "Damping Times", Value: format.Floats(tau[0]*1e3, tau[1]*1e3, tau[2]*1e3)},
		{Name: "Damping Partition Numbers", Value: format.Floats(j[0], j[1], j[2])},
		{Name: "Total Bend Angle", Value: format.Scalar(e.TotalBendAngle())},
		{Name: "Total Absolute Bend Angle", Value: format.Scalar(e.TotalAbsoluteBendAngle())},
	}, nil
}
