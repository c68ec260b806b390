// Package analysis provides turn-by-turn beam dynamics tools built on the
// one-turn matrices of an optics engine.
//
//   - [Track]: iterate a particle through the one-turn map
//   - [EstimateTune]: fractional tune from the spectrum of tracked positions
//   - [GeneratePhasePortrait]: (x, x') points turn by turn
//   - [QuadrupoleScan]: tunes and stability while scaling quadrupole strengths
//
// # Tune Cross-check
//
// The FFT only resolves the tune modulo 1 and folded into [0, 0.5]:
//
//	pts := analysis.Track(eng.OneTurn(optics.Horizontal), analysis.Point{X: 1e-3}, 1024)
//	q, _ := analysis.EstimateTune(analysis.Positions(pts))
//	if math.Abs(q-analysis.Fold(eng.Tune(optics.Horizontal))) > 1e-3 {
//	    // engine and tracking disagree
//	}
package analysis
