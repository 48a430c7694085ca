// Package pitch estimates the fundamental frequency of short audio windows
// using the McLeod pitch method (MPM).
//
// The method computes the normalized square difference function (NSDF) of a
// window, locates its zero-crossing-bracketed local maxima, sharpens each to
// sub-sample precision with parabolic interpolation, and selects the first
// maximum exceeding a fraction of the highest one. The selected fractional
// lag is converted to a frequency. Choosing the first qualifying maximum
// rather than the global one is what suppresses the octave errors plain
// autocorrelation peak picking suffers from.
//
// Reference: McLeod, P., Wyvill, G. (2005). "A smarter way to find pitch".
//
// # Usage
//
//	result, err := pitch.Analyze(window, pitch.DefaultConfig(44100))
//	if err != nil {
//		// malformed input
//	}
//	if result.Voiced {
//		fmt.Printf("%.1f Hz (clarity %.2f)\n", result.Pitch, result.Clarity)
//	}
//
// Each call is a pure computation over its window: the detector keeps no
// state between calls and may be used concurrently from multiple goroutines.
// Window size is the single latency/pitch-floor trade-off; the lowest
// detectable frequency is roughly 2*sampleRate/W.
package pitch
