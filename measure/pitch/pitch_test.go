package pitch

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Samyak2/mcleod-pitch-detection/dsp/signal"
)

func TestDetectPureTone(t *testing.T) {
	gen := signal.NewGenerator(44100)

	tone, err := gen.Sine(220, 0.8, 4096)
	if err != nil {
		t.Fatalf("failed to generate tone: %v", err)
	}

	result, err := Analyze(tone, DefaultConfig(44100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Voiced {
		t.Fatal("expected a pitch for a pure tone")
	}

	if math.Abs(result.Pitch-220) > 1 {
		t.Errorf("pitch = %v Hz, expected 220 Hz within 1 Hz", result.Pitch)
	}

	if result.Clarity < 0.9 {
		t.Errorf("clarity = %v, expected a near-perfect match for a pure tone", result.Clarity)
	}

	if math.Abs(result.Period-44100.0/220.0) > 1 {
		t.Errorf("period = %v samples, expected about %v", result.Period, 44100.0/220.0)
	}
}

func TestDetectHarmonicTone(t *testing.T) {
	gen := signal.NewGenerator(44100)

	// Harmonic-rich tone: the classic octave-error trap for naive
	// global-argmax peak picking.
	tone, err := gen.Harmonic(110, 0.8, []float64{0.5, 0.33, 0.25}, 4096)
	if err != nil {
		t.Fatalf("failed to generate tone: %v", err)
	}

	result, err := Analyze(tone, DefaultConfig(44100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Voiced {
		t.Fatal("expected a pitch for a harmonic tone")
	}

	if math.Abs(result.Pitch-110) > 1 {
		t.Errorf("pitch = %v Hz, expected 110 Hz within 1 Hz", result.Pitch)
	}
}

func TestDetectWindowSizes(t *testing.T) {
	gen := signal.NewGenerator(44100)

	for _, size := range []int{512, 1024, 2048, 4096} {
		tone, err := gen.Sine(440, 0.8, size)
		if err != nil {
			t.Fatalf("failed to generate tone: %v", err)
		}

		result, err := Analyze(tone, DefaultConfig(44100))
		if err != nil {
			t.Fatalf("W=%d: unexpected error: %v", size, err)
		}

		if !result.Voiced {
			t.Errorf("W=%d: expected a pitch", size)
			continue
		}

		if math.Abs(result.Pitch-440) > 2 {
			t.Errorf("W=%d: pitch = %v Hz, expected 440 Hz within 2 Hz", size, result.Pitch)
		}
	}
}

func TestDetectSilence(t *testing.T) {
	result, err := Analyze(make([]float64, 4096), DefaultConfig(44100))
	if err != nil {
		t.Fatalf("silence must not fail: %v", err)
	}

	if result.Voiced {
		t.Error("expected no pitch for silence")
	}

	if result.Pitch != 0 || result.Period != 0 {
		t.Errorf("unvoiced result must report zero pitch and period, got %v Hz, %v samples",
			result.Pitch, result.Period)
	}

	if math.IsNaN(result.Pitch) {
		t.Error("NaN leaked into the pitch estimate")
	}
}

func TestDetectMinimumWindow(t *testing.T) {
	// Three samples is the smallest window with interpolation neighbors.
	if _, err := Analyze([]float64{0, 1, 0}, DefaultConfig(44100)); err != nil {
		t.Errorf("W=3 must be accepted, got %v", err)
	}
}

func TestDetectInvalidInput(t *testing.T) {
	valid := DefaultConfig(44100)

	tests := []struct {
		name   string
		window []float64
		cfg    Config
		want   error
	}{
		{"empty window", nil, valid, ErrEmptyInput},
		{"one sample", []float64{1}, valid, ErrTooShort},
		{"two samples", []float64{1, -1}, valid, ErrTooShort},
		{"nan sample", []float64{0, math.NaN(), 0, 1}, valid, ErrNonFinite},
		{"inf sample", []float64{0, 1, math.Inf(1), 0}, valid, ErrNonFinite},
		{"zero sample rate", []float64{0, 1, 0}, Config{SampleRate: 0, Threshold: 0.9}, ErrInvalidSampleRate},
		{"negative threshold", []float64{0, 1, 0}, Config{SampleRate: 44100, Threshold: -0.1}, ErrInvalidThreshold},
		{"threshold one", []float64{0, 1, 0}, Config{SampleRate: 44100, Threshold: 1}, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.window, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestDetectDeterminism(t *testing.T) {
	gen := signal.NewGenerator(44100, signal.WithSeed(42))

	noise, err := gen.WhiteNoise(0.5, 2048)
	if err != nil {
		t.Fatalf("failed to generate noise: %v", err)
	}

	first, err := Analyze(noise, DefaultConfig(44100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Analyze(noise, DefaultConfig(44100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must produce identical results")
	}
}

func TestSelectPeriodFirstAboveThreshold(t *testing.T) {
	// The global maximum sits at lag 205, but the earlier maximum already
	// clears 0.9 * 1.0, so it wins: shortest plausible period first.
	maxima := []Maximum{
		{Lag: 100, Value: 0.95},
		{Lag: 205, Value: 1.0},
	}

	selected, ok := selectPeriod(maxima, 0.9)
	if !ok {
		t.Fatal("expected a selection")
	}

	if selected.Lag != 100 {
		t.Errorf("selected lag %v, expected 100", selected.Lag)
	}
}

func TestSelectPeriodEmpty(t *testing.T) {
	if _, ok := selectPeriod(nil, 0.9); ok {
		t.Error("empty maxima must not select a period")
	}
}

func TestSelectPeriodAllZero(t *testing.T) {
	maxima := []Maximum{{Lag: 50, Value: 0}, {Lag: 120, Value: 0}}

	if _, ok := selectPeriod(maxima, 0.9); ok {
		t.Error("zero-valued maxima must not select a period")
	}
}

func TestKeyMaximaBrackets(t *testing.T) {
	// Two complete brackets after the initial positive run; the run
	// containing lag 0 must never produce a candidate.
	curve := []float64{1, 0.6, 0.1, -0.4, -0.1, 0.3, 0.7, 0.2, -0.3, -0.1, 0.5, 0.1, -0.2}

	got := keyMaxima(curve)
	want := []int{6, 10}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("key maxima = %v, expected %v", got, want)
	}
}

func TestKeyMaximaTailBracket(t *testing.T) {
	// The final rising crossing has no falling partner; its bracket must
	// extend to the end of the curve instead of being dropped.
	curve := []float64{1, 0.5, -0.5, -0.2, 0.1, 0.4, 0.6}

	got := keyMaxima(curve)
	want := []int{6}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("key maxima = %v, expected %v", got, want)
	}
}

func TestKeyMaximaNoCrossings(t *testing.T) {
	// DC offset: the curve never crosses zero, so there are no candidates.
	curve := []float64{1, 0.9, 0.8, 0.9, 0.95, 0.9}

	if got := keyMaxima(curve); len(got) != 0 {
		t.Errorf("key maxima = %v, expected none", got)
	}
}

func TestKeyMaximaSkipsNaN(t *testing.T) {
	curve := []float64{1, -0.5, 0.2, math.NaN(), 0.4, -0.1}

	got := keyMaxima(curve)
	want := []int{4}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("key maxima = %v, expected %v", got, want)
	}
}

func TestRefine(t *testing.T) {
	tests := []struct {
		name      string
		curve     []float64
		k         int
		wantLag   float64
		wantValue float64
	}{
		{
			name:      "symmetric peak stays put",
			curve:     []float64{0, 0.5, 1.0, 0.5, 0},
			k:         2,
			wantLag:   2,
			wantValue: 1.0,
		},
		{
			name:      "asymmetric peak shifts toward larger neighbor",
			curve:     []float64{0, 0.4, 1.0, 0.6, 0},
			k:         2,
			wantLag:   2.1,
			wantValue: 1.005,
		},
		{
			name:      "flat triple falls back to no shift",
			curve:     []float64{0, 1, 1, 1, 0},
			k:         2,
			wantLag:   2,
			wantValue: 1,
		},
		{
			name:      "maximum on the last lag keeps integer position",
			curve:     []float64{1, -0.5, 0.2, 0.8},
			k:         3,
			wantLag:   3,
			wantValue: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := refine(tt.curve, tt.k)

			if math.Abs(got.Lag-tt.wantLag) > 1e-12 {
				t.Errorf("lag = %v, expected %v", got.Lag, tt.wantLag)
			}

			if math.Abs(got.Value-tt.wantValue) > 1e-12 {
				t.Errorf("value = %v, expected %v", got.Value, tt.wantValue)
			}
		})
	}
}
