package acf

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by autocorrelation functions.
var (
	ErrEmptyInput = errors.New("acf: empty input")
)

// AutoCorrelate computes the linear autocorrelation of x for lags 0..len(x)-1.
//
// The result r satisfies r[tau] = sum_{j} x[j]*x[j+tau] over the overlapping
// region, so r[0] is the total signal energy of the window.
//
// The computation is FFT-based: the input is zero-padded, transformed, turned
// into a power spectrum, and inverse-transformed. A same-length transform
// would compute a *circular* autocorrelation, where the value at lag tau is
// contaminated by the wraparound term r[N-tau]. That term vanishes only when
// the transform size N satisfies N >= len(x) + tau, so covering the full lag
// range 0..len(x)-1 requires N >= 2*len(x) - 1.
func AutoCorrelate(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(x)
	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("acf: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)

	err = plan.Forward(freq, padded)
	if err != nil {
		return nil, fmt.Errorf("acf: forward FFT failed: %w", err)
	}

	// Power spectrum |X[k]|^2 = X[k] * conj(X[k]); purely real, so the
	// inverse transform yields a real, symmetric sequence.
	re := make([]float64, fftSize)
	im := make([]float64, fftSize)

	for i, c := range freq {
		re[i] = real(c)
		im[i] = imag(c)
	}

	power := make([]float64, fftSize)
	vecmath.Power(power, re, im)

	for i := range freq {
		freq[i] = complex(power[i], 0)
	}

	timeDomain := make([]complex128, fftSize)

	err = plan.Inverse(timeDomain, freq)
	if err != nil {
		return nil, fmt.Errorf("acf: inverse FFT failed: %w", err)
	}

	// Only the first n lags are meaningful; the remainder mirrors them.
	result := make([]float64, n)
	for i := range result {
		result[i] = real(timeDomain[i])
	}

	return result, nil
}

// AutoCorrelateDirect computes the autocorrelation by direct summation.
//
// This is the O(W^2) reference implementation used to validate the FFT-based
// path. Prefer [AutoCorrelate] for anything but small windows.
func AutoCorrelateDirect(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(x)
	result := make([]float64, n)

	for tau := range n {
		sum := 0.0
		for j := 0; j < n-tau; j++ {
			sum += x[j] * x[j+tau]
		}

		result[tau] = sum
	}

	return result, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
