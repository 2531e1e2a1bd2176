package align

import (
	"math"
	"testing"
)

func ramp(frames, dim int, slope float64) [][]float64 {
	out := make([][]float64, frames)
	for t := range out {
		out[t] = make([]float64, dim)
		for d := range out[t] {
			out[t][d] = slope * float64(t+d)
		}
	}
	return out
}

func TestDistanceSelfIsZero(t *testing.T) {
	f := ramp(20, 13, 0.5)
	if d := Distance(f, f); math.Abs(d) > 1e-10 {
		t.Errorf("self distance = %f, want 0", d)
	}
}

func TestDistanceSymmetricPositive(t *testing.T) {
	a := ramp(20, 13, 0.5)
	b := ramp(25, 13, 0.7)
	ab := Distance(a, b)
	ba := Distance(b, a)
	if ab <= 0 {
		t.Errorf("distance = %f, want > 0", ab)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("asymmetric: %f vs %f", ab, ba)
	}
}

func TestSentinelForShortSequences(t *testing.T) {
	long := ramp(20, 13, 0.5)
	short := ramp(MinFrames-1, 13, 0.5)
	if d := Distance(short, long); d != Sentinel {
		t.Errorf("short student distance = %f, want Sentinel", d)
	}
	if d := Distance(long, short); d != Sentinel {
		t.Errorf("short reference distance = %f, want Sentinel", d)
	}
	if d := Distance(nil, long); d != Sentinel {
		t.Errorf("nil sequence distance = %f, want Sentinel", d)
	}
}

func TestNormalizationRemovesLengthBias(t *testing.T) {
	// A stretched copy of the same trajectory should stay close to the
	// reference after path-length normalization, while the raw cost grows.
	ref := ramp(20, 13, 0.5)
	stretched := make([][]float64, 0, 40)
	for _, f := range ref {
		stretched = append(stretched, f, f)
	}

	shortRes := DTW(ref, ref)
	longRes := DTW(stretched, ref)
	if longRes.Cost < shortRes.Cost {
		t.Fatalf("raw cost did not grow with length: %f vs %f", longRes.Cost, shortRes.Cost)
	}
	if norm := longRes.Normalized(); norm > 1.0 {
		t.Errorf("normalized distance of stretched copy = %f, want small", norm)
	}
}

func TestPathLenBounds(t *testing.T) {
	a := ramp(12, 4, 1)
	b := ramp(18, 4, 1)
	res := DTW(a, b)
	// Path length is at least max(n,m) and at most n+m-1.
	if res.PathLen < 18 || res.PathLen > 29 {
		t.Errorf("path length = %d, want in [18,29]", res.PathLen)
	}
}
