// Command pitchinfo runs the McLeod pitch estimator on synthesized tones.
//
// Usage:
//
//	pitchinfo [flags] [frequency-hz | note ...]
//
// Arguments are frequencies in Hz or notes in scientific pitch notation
// ("A4", "C#3"). Without arguments it analyzes a small set of reference
// frequencies.
//
// Examples:
//
//	pitchinfo 220
//	pitchinfo A4 E2
//	pitchinfo -rate 48000 -window 2048 440 880
//	pitchinfo -harmonics 4 -threshold 0.8 110
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Samyak2/mcleod-pitch-detection/dsp/signal"
	"github.com/Samyak2/mcleod-pitch-detection/measure/pitch"
)

var defaultFrequencies = []float64{82.41, 110, 220, 440, 523.25, 880}

func main() {
	rate := flag.Float64("rate", 44100, "sample rate in Hz")
	windowSize := flag.Int("window", 4096, "analysis window length in samples")
	threshold := flag.Float64("threshold", pitch.DefaultThreshold, "peak acceptance fraction in [0, 1)")
	harmonics := flag.Int("harmonics", 0, "number of additional harmonics in the test tone")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pitchinfo [flags] [frequency-hz | note ...]\n\n")
		fmt.Fprintf(os.Stderr, "Synthesizes tones and reports the detected pitch.\n")
		fmt.Fprintf(os.Stderr, "Arguments are frequencies in Hz or notes like A4 or C#3.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, analyzes a set of reference frequencies.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo 220\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo A4 E2\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -rate 48000 -window 2048 440 880\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -harmonics 4 110\n")
	}
	flag.Parse()

	freqs, err := resolveFrequencies(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg := pitch.Config{
		SampleRate: *rate,
		Threshold:  *threshold,
	}

	gen := signal.NewGenerator(*rate)

	partials := make([]float64, *harmonics)
	for i := range partials {
		partials[i] = 1 / float64(i+2)
	}

	if err := printAnalysis(gen, cfg, freqs, partials, *windowSize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func resolveFrequencies(args []string) ([]float64, error) {
	if len(args) == 0 {
		return defaultFrequencies, nil
	}

	freqs := make([]float64, 0, len(args))

	for _, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			// Not a number: try scientific pitch notation, e.g. "A4".
			f, err = pitch.NoteFrequency(arg)
		}

		if err != nil || f <= 0 {
			return nil, fmt.Errorf("invalid frequency or note %q", arg)
		}

		freqs = append(freqs, f)
	}

	return freqs, nil
}

func printAnalysis(gen *signal.Generator, cfg pitch.Config, freqs, partials []float64, windowSize int) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Target [Hz]\tDetected [Hz]\tError [cents]\tClarity\tNote\n")
	fmt.Fprintf(tw, "-----------\t-------------\t-------------\t-------\t----\n")

	for _, f := range freqs {
		tone, err := gen.Harmonic(f, 0.8, partials, windowSize)
		if err != nil {
			return err
		}

		result, err := pitch.Analyze(tone, cfg)
		if err != nil {
			return err
		}

		if !result.Voiced {
			fmt.Fprintf(tw, "%.2f\t-\t-\t-\tno pitch\n", f)
			continue
		}

		note, err := pitch.NoteFromFrequency(result.Pitch)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%.2f\t%.2f\t%+.1f\t%.3f\t%s\n",
			f,
			result.Pitch,
			centsError(result.Pitch, f),
			result.Clarity,
			note,
		)
	}

	return tw.Flush()
}

func centsError(detected, target float64) float64 {
	return 1200 * math.Log2(detected/target)
}
