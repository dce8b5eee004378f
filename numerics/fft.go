package numerics

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SpectralDecomposition holds the one-sided output of a real-input forward
// FFT: frequency bin index i corresponds to cycle frequency i/n.
type SpectralDecomposition struct {
	Real      []float64
	Imag      []float64
	Magnitude []float64
}

// FFT computes the one-sided forward FFT of a real-valued series using
// gonum's dsp/fourier, the natural sibling of gonum/mat and gonum/stat
// already anchoring this kernel's other routines.
func FFT(x []float64) SpectralDecomposition {
	n := len(x)
	if n == 0 {
		return SpectralDecomposition{}
	}
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, x)

	real := make([]float64, len(coeff))
	imag := make([]float64, len(coeff))
	mag := make([]float64, len(coeff))
	for i, c := range coeff {
		real[i] = cmplx.Abs(c) * math.Cos(cmplx.Phase(c))
		imag[i] = cmplx.Abs(c) * math.Sin(cmplx.Phase(c))
		mag[i] = cmplx.Abs(c)
	}
	return SpectralDecomposition{Real: real, Imag: imag, Magnitude: mag}
}

// DominantPeriod returns the period (in samples) of the largest-magnitude
// non-DC frequency bin, along with its magnitude. Useful for seasonal
// period discovery diagnostics and for verifying MFLES's recovered Fourier
// amplitude against a known seasonal period in tests.
func DominantPeriod(x []float64) (period float64, magnitude float64) {
	spec := FFT(x)
	if len(spec.Magnitude) < 2 {
		return math.NaN(), math.NaN()
	}
	n := len(x)
	bestIdx := 1
	best := spec.Magnitude[1]
	for i := 2; i < len(spec.Magnitude); i++ {
		if spec.Magnitude[i] > best {
			best = spec.Magnitude[i]
			bestIdx = i
		}
	}
	return float64(n) / float64(bestIdx), best
}
