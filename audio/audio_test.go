package audio

import (
	"bytes"
	"math"
	"testing"
)

func sine(freq float64, rate, n int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func TestRMS(t *testing.T) {
	w := Waveform{Samples: sine(440, SampleRate, SampleRate, 1.0), Rate: SampleRate}
	// RMS of a full-scale sine is 1/sqrt(2)
	if got := w.RMS(); math.Abs(got-1/math.Sqrt2) > 0.01 {
		t.Errorf("RMS = %f, want ~%f", got, 1/math.Sqrt2)
	}
}

func TestIsSilent(t *testing.T) {
	quiet := Waveform{Samples: sine(200, SampleRate, 8000, 0.001), Rate: SampleRate}
	if !quiet.IsSilent() {
		t.Error("sub-threshold waveform not detected as silent")
	}
	zeros := Waveform{Samples: make([]float64, 8000), Rate: SampleRate}
	if !zeros.IsSilent() {
		t.Error("all-zero waveform not detected as silent")
	}
	loud := Waveform{Samples: sine(200, SampleRate, 8000, 0.5), Rate: SampleRate}
	if loud.IsSilent() {
		t.Error("loud waveform detected as silent")
	}
}

func TestNormalize(t *testing.T) {
	w := Waveform{Samples: []float64{0.1, -0.25, 0.2}, Rate: SampleRate}
	n := w.Normalize()
	if math.Abs(n.Samples[1]+1.0) > 1e-12 {
		t.Errorf("peak after normalize = %f, want -1.0", n.Samples[1])
	}
	// Original untouched
	if w.Samples[1] != -0.25 {
		t.Errorf("input mutated: %f", w.Samples[1])
	}
}

func TestResample(t *testing.T) {
	w := Waveform{Samples: sine(440, 44100, 44100, 0.8), Rate: 44100}
	r := w.Resample(SampleRate)
	if r.Rate != SampleRate {
		t.Fatalf("rate = %d, want %d", r.Rate, SampleRate)
	}
	// One second of audio should stay roughly one second long.
	if math.Abs(r.Duration()-1.0) > 0.01 {
		t.Errorf("duration = %f, want ~1.0", r.Duration())
	}
	// Identity resample keeps samples.
	same := r.Resample(SampleRate)
	if len(same.Samples) != len(r.Samples) {
		t.Errorf("identity resample changed length %d -> %d", len(r.Samples), len(same.Samples))
	}
}

func TestWAVRoundTrip(t *testing.T) {
	in := Waveform{Samples: sine(300, SampleRate, 3200, 0.6), Rate: SampleRate}
	var buf bytes.Buffer
	if err := WriteWAV(&buf, in); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	out, err := ReadWAV(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadWAV: %v", err)
	}
	if out.Rate != SampleRate {
		t.Fatalf("rate = %d, want %d", out.Rate, SampleRate)
	}
	if len(out.Samples) != len(in.Samples) {
		t.Fatalf("len = %d, want %d", len(out.Samples), len(in.Samples))
	}
	for i := range in.Samples {
		if math.Abs(out.Samples[i]-in.Samples[i]) > 1e-3 {
			t.Fatalf("sample %d = %f, want %f", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestReadWAVRejectsGarbage(t *testing.T) {
	if _, err := ReadWAV(bytes.NewReader([]byte("not a wav file at all"))); err == nil {
		t.Error("expected error for non-RIFF input")
	}
}

func TestReadWAVRejectsZeroSampleRate(t *testing.T) {
	in := Waveform{Samples: sine(300, SampleRate, 3200, 0.6), Rate: SampleRate}
	var buf bytes.Buffer
	if err := WriteWAV(&buf, in); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	// Zero out the sample-rate field of the fmt chunk (bytes 24-27).
	raw := buf.Bytes()
	copy(raw[24:28], []byte{0, 0, 0, 0})
	if _, err := ReadWAV(bytes.NewReader(raw)); err == nil {
		t.Error("expected error for zero sample rate")
	}
}
