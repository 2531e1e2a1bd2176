// Package align computes Dynamic Time Warping distances between acoustic
// feature sequences. The distance used for scoring is the cumulative DTW
// cost divided by the warping path length, so utterances of different
// lengths and speaking rates remain comparable against one reference.
package align

import (
	"math"

	"github.com/englab/speakscore/internal/mathutil"
)

// MinFrames is the minimum sequence length for a meaningful alignment.
// Shorter sequences produce near-zero distances purely from having almost
// no frames, so they get the sentinel instead.
const MinFrames = 5

// Sentinel is the fixed large distance returned for degenerate inputs.
// Downstream normalization maps it to a near-zero score.
const Sentinel = 1e9

// Result holds the raw alignment outcome.
type Result struct {
	Cost    float64 // cumulative DTW cost
	PathLen int     // optimal warping path length in steps
}

// Normalized returns the path-length-normalized distance.
func (r Result) Normalized() float64 {
	if r.PathLen == 0 {
		return Sentinel
	}
	return r.Cost / float64(r.PathLen)
}

// Distance returns the normalized DTW distance between two feature
// sequences, or Sentinel when either side has fewer than MinFrames frames.
func Distance(a, b [][]float64) float64 {
	if len(a) < MinFrames || len(b) < MinFrames {
		return Sentinel
	}
	return DTW(a, b).Normalized()
}

// DTW runs the full dynamic programming recursion with Euclidean per-frame
// cost, tracking the path length of the optimal warp alongside the
// cumulative cost.
func DTW(a, b [][]float64) Result {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return Result{Cost: Sentinel}
	}

	acc := mathutil.NewMat(n, m)
	steps := make([][]int32, n)
	for i := range steps {
		steps[i] = make([]int32, m)
	}

	acc[0][0] = euclidean(a[0], b[0])
	steps[0][0] = 1
	for j := 1; j < m; j++ {
		acc[0][j] = acc[0][j-1] + euclidean(a[0], b[j])
		steps[0][j] = steps[0][j-1] + 1
	}
	for i := 1; i < n; i++ {
		acc[i][0] = acc[i-1][0] + euclidean(a[i], b[0])
		steps[i][0] = steps[i-1][0] + 1
	}

	for i := 1; i < n; i++ {
		for j := 1; j < m; j++ {
			// Diagonal wins ties so matched regions keep the shortest path.
			bestCost := acc[i-1][j-1]
			bestSteps := steps[i-1][j-1]
			if acc[i-1][j] < bestCost {
				bestCost = acc[i-1][j]
				bestSteps = steps[i-1][j]
			}
			if acc[i][j-1] < bestCost {
				bestCost = acc[i][j-1]
				bestSteps = steps[i][j-1]
			}
			acc[i][j] = bestCost + euclidean(a[i], b[j])
			steps[i][j] = bestSteps + 1
		}
	}

	return Result{Cost: acc[n-1][m-1], PathLen: int(steps[n-1][m-1])}
}

func euclidean(x, y []float64) float64 {
	d := len(x)
	if len(y) < d {
		d = len(y)
	}
	sum := 0.0
	for i := 0; i < d; i++ {
		diff := x[i] - y[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
