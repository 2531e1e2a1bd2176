// Package audio handles ingestion of student recordings: WAV decoding,
// downmixing, resampling to the canonical 16 kHz mono form, peak
// normalization and silence detection.
package audio

import "math"

// SampleRate is the canonical sample rate for all scoring. Every waveform
// entering the pipeline is resampled to this rate first.
const SampleRate = 16000

// SilenceRMS is the root-mean-square energy floor below which a recording
// is treated as silence and scored zero without further analysis.
const SilenceRMS = 0.005

// Waveform is a mono sequence of samples in [-1.0, 1.0] at a known rate.
type Waveform struct {
	Samples []float64
	Rate    int
}

// Duration returns the waveform length in seconds.
func (w Waveform) Duration() float64 {
	if w.Rate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.Rate)
}

// RMS returns the root-mean-square energy of the waveform.
func (w Waveform) RMS() float64 {
	if len(w.Samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range w.Samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(w.Samples)))
}

// IsSilent reports whether the waveform energy is below the silence floor.
func (w Waveform) IsSilent() bool {
	return w.RMS() < SilenceRMS
}

// Normalize scales the samples so the peak amplitude is 1.0.
// All-zero input is returned unchanged.
func (w Waveform) Normalize() Waveform {
	peak := 0.0
	for _, s := range w.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return w
	}
	out := make([]float64, len(w.Samples))
	inv := 1.0 / peak
	for i, s := range w.Samples {
		out[i] = s * inv
	}
	return Waveform{Samples: out, Rate: w.Rate}
}

// Resample converts the waveform to the target rate using linear
// interpolation between neighbouring samples.
func (w Waveform) Resample(rate int) Waveform {
	if w.Rate == rate || len(w.Samples) == 0 {
		return Waveform{Samples: w.Samples, Rate: rate}
	}
	ratio := float64(w.Rate) / float64(rate)
	n := int(float64(len(w.Samples)) / ratio)
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(w.Samples)-1 {
			out[i] = w.Samples[len(w.Samples)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = w.Samples[j]*(1-frac) + w.Samples[j+1]*frac
	}
	return Waveform{Samples: out, Rate: rate}
}
