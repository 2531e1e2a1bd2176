package prosody

import "math"

// Gates applied before any prosodic score is awarded. A short, quiet or
// lexically wrong answer never earns accent credit.
const (
	MinDuration    = 0.5  // seconds
	IntensityFloor = 40.0 // dB
	MinLexical     = 50.0 // lexical correctness percentage
)

// Blend weights: pitch variation is the stronger accent signal than tempo.
const (
	pitchWeight  = 0.6
	rhythmWeight = 0.4
)

// RhythmScore compares utterance durations symmetrically: the ratio of the
// shorter to the longer duration, scaled to 0-100.
func RhythmScore(durStudent, durRef float64) float64 {
	if durStudent <= 0 || durRef <= 0 {
		return 0
	}
	return math.Min(durStudent, durRef) / math.Max(durStudent, durRef) * 100
}

// PitchVariationScore compares pitch standard deviations:
// max(0, 100 - |student - reference|).
func PitchVariationScore(stdStudent, stdRef float64) float64 {
	return math.Max(0, 100-math.Abs(stdStudent-stdRef))
}

// AccentScore blends pitch variation and rhythm similarity into a 0-100
// accent score. Returns 0 when the recording is too short, too quiet, or
// the lexical correctness score is below MinLexical.
func AccentScore(student, ref Profile, lexical float64) float64 {
	if student.Duration < MinDuration || student.MeanIntensity < IntensityFloor || lexical < MinLexical {
		return 0
	}
	pitch := PitchVariationScore(student.PitchStd, ref.PitchStd)
	rhythm := RhythmScore(student.Duration, ref.Duration)
	return math.Min(pitch*pitchWeight+rhythm*rhythmWeight, 100)
}

// MeanPitchScore scores mean-pitch closeness with a smooth falloff:
// 100 / (1 + diff/50). Same silence gates as AccentScore, without the
// lexical gate.
func MeanPitchScore(student, ref Profile) float64 {
	if student.Duration < MinDuration || student.MeanIntensity < IntensityFloor {
		return 0
	}
	diff := math.Abs(student.MeanPitch - ref.MeanPitch)
	s := 100 / (1 + diff/50)
	return math.Min(math.Max(s, 0), 100)
}

// Completeness returns the fraction of expected words actually spoken,
// capped at 1. Used to scale pronunciation scores so trailing off early
// does not keep full credit.
func Completeness(expectedWords, spokenWords int) float64 {
	if expectedWords == 0 {
		return 0
	}
	c := float64(spokenWords) / float64(expectedWords)
	return math.Min(c, 1)
}
