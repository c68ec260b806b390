package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

var ErrShortSignal = errors.New("analysis: signal too short for a spectrum")

// PowerSpectrum returns the magnitudes of the positive-frequency half of the
// Hann-windowed spectrum of data. Bin k corresponds to k/len(data) cycles
// per sample.
func PowerSpectrum(data []float64) []float64 {
	x := make([]float64, len(data))
	copy(x, data)

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))
	for i := range x {
		x[i] -= mean
	}
	window.Apply(x, window.Hann)

	spectrum := fft.FFTReal(x)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// EstimateTune returns the fractional tune, folded into [0, 0.5], of a
// turn-by-turn position signal. The peak bin is refined by parabolic
// interpolation over its neighbours.
func EstimateTune(positions []float64) (float64, error) {
	n := len(positions)
	if n < 8 {
		return 0, ErrShortSignal
	}
	ps := PowerSpectrum(positions)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	k := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			k += 0.5 * (a - c) / den
		}
	}
	return Fold(k / float64(n)), nil
}

// Fold maps a tune to the fractional value an FFT can observe.
func Fold(q float64) float64 {
	f := q - math.Floor(q)
	if f > 0.5 {
		f = 1 - f
	}
	return f
}
