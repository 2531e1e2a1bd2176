// Package prosody measures pitch, intensity and duration of a waveform and
// scores accent/rhythm similarity between a student recording and its
// reference.
package prosody

import (
	"math"

	"github.com/englab/speakscore/audio"
	"github.com/englab/speakscore/internal/mathutil"
)

// Config holds pitch-tracking parameters.
type Config struct {
	FrameLenMs   float64
	FrameShiftMs float64
	MinPitch     float64 // Hz, lower search bound
	MaxPitch     float64 // Hz, upper search bound
	Voicing      float64 // normalized autocorrelation peak threshold
	EnergyFloor  float64 // frame RMS below which a frame is unvoiced
}

// DefaultConfig covers the adult speech range.
func DefaultConfig() Config {
	return Config{
		FrameLenMs:   40.0,
		FrameShiftMs: 10.0,
		MinPitch:     75.0,
		MaxPitch:     500.0,
		Voicing:      0.3,
		EnergyFloor:  0.01,
	}
}

// Profile summarizes the prosodic measurements of one waveform.
type Profile struct {
	Duration      float64 // seconds
	MeanPitch     float64 // Hz over voiced frames, 0 if none
	PitchStd      float64 // Hz over voiced frames
	MeanIntensity float64 // dB re 20 uPa, averaged over frames
	VoicedFrames  int
}

// Analyzer extracts prosodic profiles. Construct once at startup and share;
// it is stateless and safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer returns an analyzer with the given config.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze measures duration, frame-wise intensity and autocorrelation-based
// pitch statistics for the waveform.
func (a *Analyzer) Analyze(w audio.Waveform) Profile {
	p := Profile{Duration: w.Duration()}
	if len(w.Samples) == 0 || w.Rate == 0 {
		return p
	}

	frameLen := int(a.cfg.FrameLenMs * float64(w.Rate) / 1000.0)
	frameShift := int(a.cfg.FrameShiftMs * float64(w.Rate) / 1000.0)
	if frameLen > len(w.Samples) {
		frameLen = len(w.Samples)
	}

	minLag := int(float64(w.Rate) / a.cfg.MaxPitch)
	maxLag := int(float64(w.Rate) / a.cfg.MinPitch)
	if maxLag >= frameLen {
		maxLag = frameLen - 1
	}

	var pitches mathutil.Vec
	var intensitySum float64
	frames := 0

	for start := 0; start+frameLen <= len(w.Samples); start += frameShift {
		frame := w.Samples[start : start+frameLen]
		frames++

		rms := frameRMS(frame)
		intensitySum += intensityDB(rms)

		if rms < a.cfg.EnergyFloor {
			continue
		}
		if f0 := a.framePitch(frame, w.Rate, minLag, maxLag); f0 > 0 {
			pitches = append(pitches, f0)
		}
	}

	if frames > 0 {
		p.MeanIntensity = intensitySum / float64(frames)
	}
	p.VoicedFrames = len(pitches)
	p.MeanPitch = mathutil.Mean(pitches)
	p.PitchStd = mathutil.StdDev(pitches)
	return p
}

// framePitch estimates F0 via the peak of the normalized autocorrelation
// within the configured lag range. Returns 0 for unvoiced frames.
func (a *Analyzer) framePitch(frame []float64, rate, minLag, maxLag int) float64 {
	if minLag < 1 || maxLag <= minLag {
		return 0
	}
	r0 := 0.0
	for _, s := range frame {
		r0 += s * s
	}
	if r0 == 0 {
		return 0
	}

	bestLag, bestVal := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < len(frame); i++ {
			sum += frame[i] * frame[i+lag]
		}
		if v := sum / r0; v > bestVal {
			bestVal = v
			bestLag = lag
		}
	}
	if bestVal < a.cfg.Voicing || bestLag == 0 {
		return 0
	}
	return float64(rate) / float64(bestLag)
}

func frameRMS(frame []float64) float64 {
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// intensityDB converts linear RMS to dB re 20 uPa, floored at 0.
func intensityDB(rms float64) float64 {
	if rms <= 0 {
		return 0
	}
	db := 20 * math.Log10(rms/2e-5)
	if db < 0 {
		return 0
	}
	return db
}
