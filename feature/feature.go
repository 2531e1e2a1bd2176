// Package feature converts a waveform into the acoustic feature sequence
// used for pronunciation comparison: 13 mel-frequency cepstral coefficients
// per frame with first and second time-derivatives appended, giving uniform
// 39-dimensional vectors.
package feature

import (
	"github.com/pkg/errors"

	"github.com/englab/speakscore/audio"
)

// ErrInsufficientSignal is returned when the input is too short to produce
// the minimum number of frames. Callers map it to a zero score rather than
// propagating a failure.
var ErrInsufficientSignal = errors.New("feature: insufficient signal")

// MinFrames is the minimum frame count for a usable feature sequence.
const MinFrames = 5

// Config holds extraction parameters.
type Config struct {
	SampleRate    int
	FrameLenMs    float64 // frame length in milliseconds
	FrameShiftMs  float64 // frame shift in milliseconds
	PreEmphCoeff  float64
	NumMelFilters int
	NumCepstra    int
	LowFreq       float64
	HighFreq      float64
	FFTSize       int
	CepLifter     int
	UseCMN        bool // cepstral mean normalization
	DeltaWindow   int  // regression window for derivative estimation
}

// DefaultConfig returns the standard configuration for 16 kHz speech.
func DefaultConfig() Config {
	return Config{
		SampleRate:    audio.SampleRate,
		FrameLenMs:    25.0,
		FrameShiftMs:  10.0,
		PreEmphCoeff:  0.97,
		NumMelFilters: 26,
		NumCepstra:    13,
		LowFreq:       0,
		HighFreq:      8000,
		FFTSize:       512,
		CepLifter:     22,
		UseCMN:        true,
		DeltaWindow:   2,
	}
}

// Dim returns the feature vector dimension (cepstra + delta + delta-delta).
func (c Config) Dim() int {
	return 3 * c.NumCepstra
}

// Extract computes the feature sequence for a waveform.
// Returns ErrInsufficientSignal when the input yields fewer than MinFrames
// frames; the result is otherwise a non-empty [numFrames][Dim()] matrix.
func Extract(w audio.Waveform, cfg Config) ([][]float64, error) {
	if len(w.Samples) == 0 {
		return nil, ErrInsufficientSignal
	}

	frameLen := int(cfg.FrameLenMs * float64(cfg.SampleRate) / 1000.0)
	frameShift := int(cfg.FrameShiftMs * float64(cfg.SampleRate) / 1000.0)

	emphasized := preEmphasize(w.Samples, cfg.PreEmphCoeff)
	frames := splitFrames(emphasized, frameLen, frameShift)
	if len(frames) < MinFrames {
		return nil, ErrInsufficientSignal
	}

	fb := newFilterbank(cfg.NumMelFilters, cfg.FFTSize, cfg.SampleRate, cfg.LowFreq, cfg.HighFreq)
	window := hammingWindow(frameLen)
	melBuf := make([]float64, cfg.NumMelFilters)

	mfccs := make([][]float64, len(frames))
	for i, frame := range frames {
		applyWindow(frame, window)
		power := PowerSpectrum(frame, cfg.FFTSize)
		fb.apply(power, melBuf)
		cep := dct(melBuf, cfg.NumCepstra)
		if cfg.CepLifter > 0 {
			lifter(cep, cfg.CepLifter)
		}
		mfccs[i] = cep
	}

	if cfg.UseCMN {
		applyCMN(mfccs)
	}

	return withDeltas(mfccs, cfg.DeltaWindow), nil
}

// applyCMN subtracts the per-dimension utterance mean, removing channel and
// speaker-dependent spectral bias before sequences are compared.
func applyCMN(features [][]float64) {
	T := len(features)
	if T == 0 {
		return
	}
	dim := len(features[0])
	mean := make([]float64, dim)
	for _, f := range features {
		for d, v := range f {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(T)
	}
	for _, f := range features {
		for d := range f {
			f[d] -= mean[d]
		}
	}
}
