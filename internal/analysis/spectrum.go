// Package analysis provides frequency analysis of recorded motion
// series, e.g. the lateral sway of a cloth's centroid over a run.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the positive-frequency half
// of the signal's FFT. The input is zero-padded to the next power of
// two so the radix-2 path is taken.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	bins := fft.FFTReal(padded)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the strongest nonzero frequency in hz for
// samples spaced dt apart. Returns 0 when the signal has no
// oscillatory content or dt is not positive.
func DominantFrequency(data []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	// rounding noise in the non-DC bins is not a peak
	if maxIdx == 0 || maxPower < 1e-9 {
		return 0
	}

	// ps covers half of the padded window
	n := len(ps) * 2
	return float64(maxIdx) / (float64(n) * dt)
}
