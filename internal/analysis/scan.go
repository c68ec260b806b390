package analysis

import (
	"context"
	"errors"

	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/optics"
)

// ScanPoint is the optics outcome for one quadrupole scale factor.
type ScanPoint struct {
	Scale  float64
	Stable bool
	Tune   [2]float64 // horizontal, vertical; zero when unstable
}

// QuadrupoleScan multiplies every quadrupole K1 by a factor swept from
// scaleMin to scaleMax and records the tunes, marking where the periodic
// solution ceases to exist. Points are solved concurrently. Engine errors
// other than instability abort the scan, as does ctx.
func QuadrupoleScan(ctx context.Context, elems []lattice.Element, energyGeV, scaleMin, scaleMax float64, steps int) ([]ScanPoint, error) {
	if steps <= 1 {
		steps = 2
	}
	step := (scaleMax - scaleMin) / float64(steps-1)

	results := make([]ScanPoint, steps)
	errs := make([]error, steps)

	parallelFor(steps, 4, func(start, end int) {
		scaled := make([]lattice.Element, len(elems))
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			scale := scaleMin + float64(i)*step
			for j, e := range elems {
				if e.Kind == lattice.Quadrupole {
					e.K1 *= scale
				}
				scaled[j] = e
			}
			results[i], errs[i] = solve(scaled, energyGeV, scale)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func solve(elems []lattice.Element, energyGeV, scale float64) (ScanPoint, error) {
	pt := ScanPoint{Scale: scale}
	eng, err := optics.NewLinear(elems, energyGeV)
	switch {
	case errors.Is(err, optics.ErrUnstable):
		return pt, nil
	case err != nil:
		return pt, err
	}
	pt.Stable = true
	pt.Tune = [2]float64{eng.Tune(optics.Horizontal), eng.Tune(optics.Vertical)}
	return pt, nil
}
