package pitch

import (
	"errors"
	"math"

	"github.com/Samyak2/mcleod-pitch-detection/dsp/nsdf"
)

// DefaultThreshold is the peak acceptance fraction from the McLeod paper.
// It trades off octave errors against picking spurious early peaks.
const DefaultThreshold = 0.9

// Errors returned by pitch detection functions.
var (
	ErrEmptyInput        = errors.New("pitch: empty window")
	ErrTooShort          = errors.New("pitch: window must contain at least 3 samples")
	ErrNonFinite         = errors.New("pitch: window contains non-finite samples")
	ErrInvalidSampleRate = errors.New("pitch: sample rate must be positive")
	ErrInvalidThreshold  = errors.New("pitch: threshold must be in [0, 1)")
)

// Config holds pitch detection parameters.
type Config struct {
	// SampleRate is the sample rate of the analyzed window in Hz.
	SampleRate float64

	// Threshold is the fraction of the highest refined NSDF maximum a
	// candidate must exceed to be selected. Valid range [0, 1).
	Threshold float64
}

// DefaultConfig returns a Config with the default threshold.
func DefaultConfig(sampleRate float64) Config {
	return Config{
		SampleRate: sampleRate,
		Threshold:  DefaultThreshold,
	}
}

// Maximum is a refined local maximum of the NSDF curve.
// Lag is fractional; Value is the interpolated curve height.
type Maximum struct {
	Lag   float64
	Value float64
}

// Result holds the pitch estimate for a single window.
//
// A window with no reliable periodicity (silence, noise, DC) yields
// Voiced == false with zero Pitch; this is a normal outcome, not an error.
type Result struct {
	Pitch   float64 // estimated fundamental frequency in Hz, 0 if unvoiced
	Period  float64 // selected period in fractional samples, 0 if unvoiced
	Clarity float64 // NSDF value at the selected maximum, 0 if unvoiced
	Voiced  bool

	Maxima []Maximum // all refined candidate maxima, ascending lag
	NSDF   []float64 // the full NSDF curve, lags 0..len(window)-1
}

// Detector estimates the fundamental frequency of signal windows using the
// McLeod pitch method.
type Detector struct {
	cfg Config
}

// NewDetector creates a pitch detector.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Analyze is a one-shot pitch estimate for a single window.
func Analyze(window []float64, cfg Config) (Result, error) {
	return NewDetector(cfg).Detect(window)
}

// Detect estimates the pitch of a single window.
//
// The window must contain at least 3 finite samples (the minimum for
// parabolic refinement). The same input always produces the same Result;
// no state is kept between calls.
func (d *Detector) Detect(window []float64) (Result, error) {
	if d.cfg.SampleRate <= 0 {
		return Result{}, ErrInvalidSampleRate
	}

	if d.cfg.Threshold < 0 || d.cfg.Threshold >= 1 {
		return Result{}, ErrInvalidThreshold
	}

	if len(window) == 0 {
		return Result{}, ErrEmptyInput
	}

	if len(window) < 3 {
		return Result{}, ErrTooShort
	}

	for _, v := range window {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, ErrNonFinite
		}
	}

	curve, err := nsdf.Curve(window)
	if err != nil {
		return Result{}, err
	}

	keys := keyMaxima(curve)

	maxima := make([]Maximum, len(keys))
	for i, k := range keys {
		maxima[i] = refine(curve, k)
	}

	result := Result{
		Maxima: maxima,
		NSDF:   curve,
	}

	selected, ok := selectPeriod(maxima, d.cfg.Threshold)
	if !ok || selected.Lag <= 0 {
		return result, nil
	}

	result.Voiced = true
	result.Period = selected.Lag
	result.Clarity = selected.Value
	result.Pitch = d.cfg.SampleRate / selected.Lag

	return result, nil
}

// keyMaxima finds the integer lags of the key maxima of the NSDF curve in a
// single linear scan.
//
// A key maximum is the largest sample between a rising zero crossing
// (previous <= 0, current >= 0) and the next falling zero crossing
// (previous >= 0, current <= 0). The positive run containing lag 0 has no
// opening rising crossing and is therefore never a candidate, which excludes
// the trivial self-similarity maximum at lag 0. A trailing rising crossing
// with no falling partner keeps its bracket open to the end of the curve so
// the last candidate period is not lost. NaN lags (indeterminate energy) are
// skipped.
func keyMaxima(curve []float64) []int {
	var maxima []int

	open := false
	best := -1

	for i := 1; i < len(curve); i++ {
		prev := curve[i-1]
		cur := curve[i]

		if !open && prev <= 0 && cur >= 0 {
			open = true
			best = -1
		}

		if !open {
			continue
		}

		if !math.IsNaN(cur) && (best < 0 || cur > curve[best]) {
			best = i
		}

		if prev >= 0 && cur <= 0 {
			if best >= 0 {
				maxima = append(maxima, best)
			}

			open = false
			best = -1
		}
	}

	if open && best >= 0 {
		maxima = append(maxima, best)
	}

	return maxima
}

// refine sharpens a key maximum at integer lag k to sub-sample precision by
// fitting a parabola through the maximum and its two neighbors.
//
// The offset falls back to 0 when the maximum sits on the last lag (no right
// neighbor, tail bracket) or the three points are collinear (zero or
// undefined denominator).
func refine(curve []float64, k int) Maximum {
	if k <= 0 || k >= len(curve)-1 {
		return Maximum{Lag: float64(k), Value: curve[k]}
	}

	alpha := curve[k-1]
	beta := curve[k]
	gamma := curve[k+1]

	denom := alpha - 2*beta + gamma
	if denom == 0 || math.IsNaN(denom) {
		return Maximum{Lag: float64(k), Value: beta}
	}

	p := 0.5 * (alpha - gamma) / denom

	return Maximum{
		Lag:   float64(k) + p,
		Value: beta - 0.25*(alpha-gamma)*p,
	}
}

// selectPeriod picks the period lag from the refined maxima: the first
// maximum, in ascending lag order, whose value strictly exceeds
// threshold * max.
//
// Picking the first qualifying maximum rather than the global one biases the
// choice toward the shortest plausible period, which suppresses subharmonic
// (octave) errors. Returns false when the set is empty or no value exceeds
// the bound.
func selectPeriod(maxima []Maximum, threshold float64) (Maximum, bool) {
	if len(maxima) == 0 {
		return Maximum{}, false
	}

	highest := maxima[0].Value
	for _, m := range maxima[1:] {
		if m.Value > highest {
			highest = m.Value
		}
	}

	bound := threshold * highest
	for _, m := range maxima {
		if m.Value > bound {
			return m, true
		}
	}

	return Maximum{}, false
}
