// Package score maps raw alignment distances onto bounded scores.
package score

import "math"

// DefaultMaxDistance is the calibration constant for the exponential decay.
// Tuned against the reference recordings shipped with the default question
// bank; treat it as configuration when recalibrating for new assets.
const DefaultMaxDistance = 20000

// Normalizer converts a non-negative distance (lower is better, possibly
// +Inf or a sentinel) into a score in [0, Scale] via exponential decay:
//
//	score = Scale * exp(-distance / MaxDistance)
//
// Exponential decay concentrates resolution near small distances, where
// most genuine pronunciation variation lives, and approaches zero for
// large distances without a hard cutoff.
type Normalizer struct {
	MaxDistance float64
	Scale       float64
}

// NewNormalizer returns a normalizer for the given output scale
// (100 for question scores, 10 for per-word sub-scores).
func NewNormalizer(scale float64) Normalizer {
	return Normalizer{MaxDistance: DefaultMaxDistance, Scale: scale}
}

// Score maps distance to [0, Scale]. Infinity and NaN map to 0.
func (n Normalizer) Score(distance float64) float64 {
	if math.IsNaN(distance) || math.IsInf(distance, 1) || distance < 0 {
		if distance < 0 {
			return n.Scale
		}
		return 0
	}
	s := n.Scale * math.Exp(-distance/n.MaxDistance)
	if s > n.Scale {
		s = n.Scale
	}
	if s < 0 {
		s = 0
	}
	return s
}
