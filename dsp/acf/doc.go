// Package acf computes the linear autocorrelation of short signal windows.
//
// The autocorrelation r[tau] measures how well a window matches a copy of
// itself shifted by tau samples and is the raw similarity term behind the
// normalized square difference function used for pitch estimation.
//
// # Usage
//
//	r, err := acf.AutoCorrelate(window)   // FFT-based, O(W log W)
//	r, err := acf.AutoCorrelateDirect(w)  // direct summation, O(W^2)
//
// Both return lags 0..len(window)-1, with r[0] equal to the total signal
// energy of the window. The direct variant exists as a slow reference for
// validation; the FFT path zero-pads the transform far enough that no
// circular wraparound reaches the returned lag range.
package acf
