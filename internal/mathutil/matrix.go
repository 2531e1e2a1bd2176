// Package mathutil provides small numeric helpers shared by the alignment
// and prosody code.
package mathutil

import "math"

// Vec is a float64 vector.
type Vec = []float64

// Mat is a 2D float64 matrix stored as row-major [][]float64.
type Mat = [][]float64

// NewMat creates a rows x cols matrix initialized to zero.
// Rows share one backing slice for locality.
func NewMat(rows, cols int) Mat {
	m := make(Mat, rows)
	data := make([]float64, rows*cols)
	for i := range m {
		m[i] = data[i*cols : (i+1)*cols]
	}
	return m
}

// Mean returns the arithmetic mean of v, 0 for empty input.
func Mean(v Vec) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// StdDev returns the population standard deviation of v.
func StdDev(v Vec) float64 {
	if len(v) == 0 {
		return 0
	}
	mean := Mean(v)
	sum := 0.0
	for _, x := range v {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(v)))
}
