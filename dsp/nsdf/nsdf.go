package nsdf

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/Samyak2/mcleod-pitch-detection/dsp/acf"
)

// EnergyTerms computes the running energy term m for lags 0..len(x)-1.
//
// m[tau] is the sum of x[j]^2 + x[j+tau]^2 over the overlapping region,
// evaluated with an O(1)-per-lag recurrence instead of a fresh O(W) sum:
// each step removes the two samples that fall outside the shortened
// summation window,
//
//	m[0]   = 2 * r0
//	m[tau] = m[tau-1] - x[W-tau]^2 - x[tau-1]^2
//
// where r0 is the autocorrelation at lag zero (total window energy).
// Values are clamped at zero: the recurrence can go slightly negative from
// floating-point round-off, and negative energy would invert the sign of
// the NSDF.
func EnergyTerms(x []float64, r0 float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	sq := make([]float64, n)
	vecmath.MulBlock(sq, x, x)

	m := make([]float64, n)
	m[0] = 2 * r0

	for tau := 1; tau < n; tau++ {
		m[tau] = m[tau-1] - sq[n-tau] - sq[tau-1]
		if m[tau] < 0 {
			m[tau] = 0
		}
	}

	return m
}

// Curve computes the normalized square difference function of x for lags
// 0..len(x)-1.
//
// n[tau] = 2*r[tau] / m[tau], where r is the linear autocorrelation and m
// the energy term from [EnergyTerms]. For any window with nonzero energy,
// n[0] is 1 by construction. Lags where m[tau] is exactly zero (silence, or
// fully clamped) have no defined similarity; they are reported as NaN so
// downstream peak search can skip them instead of seeing a silent infinity.
func Curve(x []float64) ([]float64, error) {
	r, err := acf.AutoCorrelate(x)
	if err != nil {
		return nil, err
	}

	m := EnergyTerms(x, r[0])

	curve := make([]float64, len(x))
	for tau := range curve {
		if m[tau] == 0 {
			curve[tau] = math.NaN()
			continue
		}

		curve[tau] = 2 * r[tau] / m[tau]
	}

	return curve, nil
}
