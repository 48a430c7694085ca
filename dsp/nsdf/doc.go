// Package nsdf computes the normalized square difference function (NSDF)
// used by the McLeod pitch method.
//
// The NSDF rescales the autocorrelation of a window by a running energy
// term so that the curve stays in [-1, 1] regardless of signal level, with
// a value near 1 wherever the window repeats itself almost perfectly:
//
//	n[tau] = 2*r[tau] / m[tau]
//
// The energy term m is evaluated with a closed-form O(W) recurrence rather
// than an O(W^2) per-lag summation; see [EnergyTerms].
package nsdf
