package mathutil

import (
	"math"
	"testing"
)

func TestNewMat(t *testing.T) {
	m := NewMat(3, 4)
	if len(m) != 3 {
		t.Fatalf("rows = %d, want 3", len(m))
	}
	for i, row := range m {
		if len(row) != 4 {
			t.Fatalf("row %d cols = %d, want 4", i, len(row))
		}
	}
	m[1][2] = 7
	if m[1][2] != 7 || m[0][3] != 0 {
		t.Error("matrix storage broken")
	}
}

func TestMean(t *testing.T) {
	if got := Mean(Vec{1, 2, 3, 4}); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Mean = %f, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %f, want 0", got)
	}
}

func TestStdDev(t *testing.T) {
	// Population stddev of {2,4,4,4,5,5,7,9} is 2.
	v := Vec{2, 4, 4, 4, 5, 5, 7, 9}
	if got := StdDev(v); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("StdDev = %f, want 2.0", got)
	}
	if got := StdDev(Vec{5}); got != 0 {
		t.Errorf("StdDev single = %f, want 0", got)
	}
}
