// Package signal generates deterministic test signals for pitch analysis:
// pure tones, harmonic tones, and seeded white noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals at a fixed sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator for the given sample rate.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{
		sampleRate: sampleRate,
		seed:       1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SampleRate returns the generator sample rate.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}

	if g.sampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", g.sampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Harmonic generates a tone with the given fundamental plus partials.
// partials[k] is the amplitude of the (k+2)-th harmonic relative to the
// fundamental, which always has amplitude 1 before the final peak
// normalization to amplitude.
//
// Harmonic-rich tones are the realistic input for pitch estimation: unlike
// a pure sine they exercise the octave-error behavior of peak selection.
func (g *Generator) Harmonic(freqHz, amplitude float64, partials []float64, samples int) ([]float64, error) {
	out, err := g.Sine(freqHz, 1, samples)
	if err != nil {
		return nil, err
	}

	for k, level := range partials {
		if level == 0 {
			continue
		}

		partial, err := g.Sine(freqHz*float64(k+2), level, samples)
		if err != nil {
			return nil, err
		}

		vecmath.AddBlockInPlace(out, partial)
	}

	return Normalize(out, amplitude)
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Silence generates an all-zero window.
func (g *Generator) Silence(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: silence samples must be > 0: %d", samples)
	}

	return make([]float64, samples), nil
}

// Normalize scales data to the target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)

	return out, nil
}
