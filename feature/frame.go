package feature

import "math"

// preEmphasize applies a first-order high-pass filter: y[n] = x[n] - a*x[n-1].
func preEmphasize(samples []float64, alpha float64) []float64 {
	out := make([]float64, len(samples))
	out[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		out[i] = samples[i] - alpha*samples[i-1]
	}
	return out
}

// splitFrames cuts the signal into overlapping frames of frameLen samples
// advancing by frameShift.
func splitFrames(samples []float64, frameLen, frameShift int) [][]float64 {
	n := len(samples)
	if n < frameLen {
		return nil
	}
	numFrames := 1 + (n-frameLen)/frameShift
	frames := make([][]float64, numFrames)
	for i := range frames {
		start := i * frameShift
		frame := make([]float64, frameLen)
		copy(frame, samples[start:start+frameLen])
		frames[i] = frame
	}
	return frames
}

// hammingWindow returns the Hamming window coefficients for frame length n.
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func applyWindow(frame, window []float64) {
	for i := range frame {
		frame[i] *= window[i]
	}
}
