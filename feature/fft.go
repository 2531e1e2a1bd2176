package feature

import (
	"math"
	"math/cmplx"
)

// FFT computes the radix-2 Cooley-Tukey FFT. Input length must be a power of 2.
func FFT(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, x)
		return out
	}

	bits := 0
	for v := n; v > 1; v >>= 1 {
		bits++
	}
	out := make([]complex128, n)
	for i := range x {
		out[bitReverse(i, bits)] = x[i]
	}

	for size := 2; size <= n; size *= 2 {
		half := size / 2
		w := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			wn := complex(1, 0)
			for k := 0; k < half; k++ {
				u := out[start+k]
				t := wn * out[start+k+half]
				out[start+k] = u + t
				out[start+k+half] = u - t
				wn *= w
			}
		}
	}
	return out
}

func bitReverse(x, bits int) int {
	var r int
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// PowerSpectrum computes |FFT(x)|^2 / N for a real-valued frame zero-padded
// to fftSize. Returns the first fftSize/2+1 bins.
func PowerSpectrum(frame []float64, fftSize int) []float64 {
	x := make([]complex128, fftSize)
	for i := 0; i < len(frame) && i < fftSize; i++ {
		x[i] = complex(frame[i], 0)
	}
	X := FFT(x)

	nBins := fftSize/2 + 1
	power := make([]float64, nBins)
	for i := 0; i < nBins; i++ {
		r, im := real(X[i]), imag(X[i])
		power[i] = (r*r + im*im) / float64(fftSize)
	}
	return power
}
