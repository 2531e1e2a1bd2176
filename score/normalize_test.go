package score

import (
	"math"
	"testing"
)

func TestScoreBounds(t *testing.T) {
	n := NewNormalizer(100)
	if got := n.Score(0); got != 100 {
		t.Errorf("Score(0) = %f, want 100", got)
	}
	if got := n.Score(math.Inf(1)); got != 0 {
		t.Errorf("Score(+Inf) = %f, want 0", got)
	}
	if got := n.Score(math.NaN()); got != 0 {
		t.Errorf("Score(NaN) = %f, want 0", got)
	}
}

func TestScoreMonotone(t *testing.T) {
	n := NewNormalizer(100)
	prev := math.Inf(1)
	for _, d := range []float64{0, 1, 10, 100, 1000, 20000, 1e6, 1e9} {
		s := n.Score(d)
		if s > prev {
			t.Fatalf("Score not non-increasing at d=%f: %f > %f", d, s, prev)
		}
		if s < 0 || s > 100 {
			t.Fatalf("Score(%f) = %f out of range", d, s)
		}
		prev = s
	}
}

func TestWordScaleExample(t *testing.T) {
	// A word scored at distance 500 against calibration 20000 lands near
	// the top of the 10-point pronunciation band.
	n := NewNormalizer(10)
	got := n.Score(500)
	want := 10 * math.Exp(-500.0/20000.0) // ~9.75
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score(500) = %f, want %f", got, want)
	}
	if got < 9.7 || got > 9.8 {
		t.Errorf("Score(500) = %f, want ~9.75", got)
	}
}

func TestSentinelMapsNearZero(t *testing.T) {
	n := NewNormalizer(100)
	if got := n.Score(1e9); got > 1e-6 {
		t.Errorf("Score(sentinel) = %f, want ~0", got)
	}
}
