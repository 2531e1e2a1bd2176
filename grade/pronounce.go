package grade

import "github.com/englab/speakscore/score"

// GradeWord scores one prompted word. The exact lexical match gates
// everything: a word misheard as a different word earns correctness zero
// and no pronunciation credit, regardless of how close the DTW distance is.
// distance is the normalized alignment distance of the student recording
// against the word's reference asset.
func GradeWord(position int, expected string, spoken []string, distance float64, norm score.Normalizer, w Weights) WordResult {
	got := SilenceToken
	if len(spoken) > 0 {
		got = spoken[0]
	}
	wr := WordResult{Position: position, Expected: expected, Spoken: got}
	if got == expected {
		wr.Correctness = w.Correctness
		wr.Pronunciation = round2(norm.Score(distance))
	}
	wr.Total = round2(wr.Correctness + wr.Pronunciation)
	return wr
}
