package grade

import (
	"math"
	"testing"

	"github.com/englab/speakscore/align"
	"github.com/englab/speakscore/score"
)

func questionByID(t *testing.T, id int) Question {
	t.Helper()
	for _, q := range DefaultBank() {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("question %d not in default bank", id)
	return Question{}
}

func TestExactMatchIsMaxForEveryVariant(t *testing.T) {
	for _, q := range DefaultBank() {
		if q.Type == WordPronunciation {
			continue
		}
		_, total := Grade(q, q.Expected)
		if math.Abs(total-q.MaxScore()) > 0.05 {
			t.Errorf("q%d exact transcript total = %f, want %f", q.ID, total, q.MaxScore())
		}
	}
}

func TestSilenceScoresZero(t *testing.T) {
	for _, q := range DefaultBank() {
		if q.Type == WordPronunciation {
			continue
		}
		words, total := Grade(q, nil)
		if total != 0 {
			t.Errorf("q%d silence total = %f, want 0", q.ID, total)
		}
		for _, w := range words {
			if w.Spoken != SilenceToken {
				t.Errorf("q%d position %d spoken = %q, want %q", q.ID, w.Position, w.Spoken, SilenceToken)
			}
		}
	}
}

func TestBestOffsetRecoversShiftedTranscript(t *testing.T) {
	expected := []string{"a", "b", "c", "d", "e"}
	spoken := []string{"x", "a", "b", "c", "d"} // transcription leads by one
	offset, matches := BestOffset(expected, spoken)
	if offset != -1 {
		t.Errorf("offset = %d, want -1", offset)
	}
	if matches != 4 {
		t.Errorf("matches = %d, want 4", matches)
	}
}

func TestBestOffsetIdentity(t *testing.T) {
	expected := []string{"a", "b", "c", "d", "e"}
	offset, matches := BestOffset(expected, expected)
	if offset != 0 || matches != 5 {
		t.Errorf("offset/matches = %d/%d, want 0/5", offset, matches)
	}
}

func TestPhraseReadingUsesBestOffset(t *testing.T) {
	q := questionByID(t, 3)
	// Drop the first expected token and shift the rest; one spurious token
	// at the start. The offset search must recover the tail matches.
	spoken := append([]string{"uh"}, q.Expected[:len(q.Expected)-1]...)
	words, total := Grade(q, spoken)
	matched := 0
	for _, w := range words {
		if w.Correctness > 0 {
			matched++
		}
	}
	if matched != len(q.Expected)-1 {
		t.Errorf("matched = %d, want %d", matched, len(q.Expected)-1)
	}
	if total <= 0 {
		t.Errorf("total = %f, want > 0", total)
	}
}

func TestSentenceReadingPartialFluency(t *testing.T) {
	q := questionByID(t, 4)
	spoken := make([]string, len(q.Expected))
	copy(spoken, q.Expected)
	spoken[2] = "wrong" // non-silent mismatch
	words, _ := Grade(q, spoken)

	w := words[2]
	if w.Correctness != 0 {
		t.Errorf("correctness = %f, want 0", w.Correctness)
	}
	if math.Abs(w.Fluency-q.Weights.Fluency/2) > 1e-9 {
		t.Errorf("fluency = %f, want %f", w.Fluency, q.Weights.Fluency/2)
	}
	// Positions after the mismatch still score fully.
	if words[3].Total != round2(q.Weights.PerUnit) {
		t.Errorf("position 4 total = %f, want %f", words[3].Total, q.Weights.PerUnit)
	}
}

func TestRearrangementReversedOrder(t *testing.T) {
	q := questionByID(t, 2)
	reversed := make([]string, len(q.Expected))
	for i, w := range q.Expected {
		reversed[len(q.Expected)-1-i] = w
	}
	words, _ := Grade(q, reversed)

	grammar, coherence := 0.0, 0.0
	for _, w := range words {
		grammar += w.Grammar
		coherence += w.Coherence
	}
	// All words are in the bag, so presence credit is full.
	if math.Abs(grammar-q.Weights.Grammar*float64(len(q.Expected))) > 1e-9 {
		t.Errorf("grammar sum = %f, want full", grammar)
	}
	// Only the middle position can coincide under a full reversal.
	if coherence > q.Weights.Coherence {
		t.Errorf("coherence sum = %f, want at most one position's credit", coherence)
	}
}

func TestGrammarRulePartialCredit(t *testing.T) {
	q := questionByID(t, 5)

	full := []string{"he", "goes", "to", "college", "every", "day"}
	bare := []string{"he", "go", "to", "college", "every", "day"}

	fullWords, _ := Grade(q, full)
	bareWords, _ := Grade(q, bare)

	if fullWords[1].Grammar != q.Weights.Grammar {
		t.Errorf("inflected grammar = %f, want %f", fullWords[1].Grammar, q.Weights.Grammar)
	}
	if bareWords[1].Grammar != q.Weights.Grammar/2 {
		t.Errorf("bare grammar = %f, want %f", bareWords[1].Grammar, q.Weights.Grammar/2)
	}
	// Bare form is not the expected token, so no correctness either.
	if bareWords[1].Correctness != 0 {
		t.Errorf("bare correctness = %f, want 0", bareWords[1].Correctness)
	}
}

func TestSubScoresBoundedByWeights(t *testing.T) {
	for _, q := range DefaultBank() {
		if q.Type == WordPronunciation {
			continue
		}
		for _, spoken := range [][]string{q.Expected, {"noise", "noise", "noise"}, nil} {
			words, total := Grade(q, spoken)
			sum := 0.0
			for _, w := range words {
				if w.Total > q.Weights.PerUnit+1e-9 {
					t.Errorf("q%d position %d total %f exceeds per-unit %f", q.ID, w.Position, w.Total, q.Weights.PerUnit)
				}
				sum += w.Total
			}
			if total > q.MaxScore()+0.05 {
				t.Errorf("q%d total %f exceeds max %f", q.ID, total, q.MaxScore())
			}
			if math.Abs(sum-total) > 0.05 {
				t.Errorf("q%d total %f != sum of word totals %f", q.ID, total, sum)
			}
		}
	}
}

func TestGradeWordGate(t *testing.T) {
	norm := score.NewNormalizer(10)
	w := Weights{PerUnit: 20, Correctness: 10, Pronunciation: 10}

	// Matching word with distance 500: correctness 10, pronunciation ~9.75.
	wr := GradeWord(4, "engineer", []string{"engineer"}, 500, norm, w)
	if wr.Correctness != 10 {
		t.Errorf("correctness = %f, want 10", wr.Correctness)
	}
	if math.Abs(wr.Pronunciation-9.75) > 0.01 {
		t.Errorf("pronunciation = %f, want ~9.75", wr.Pronunciation)
	}
	if math.Abs(wr.Total-19.75) > 0.01 {
		t.Errorf("total = %f, want ~19.75", wr.Total)
	}

	// Misheard word: zero everything even at distance 0.
	wr = GradeWord(4, "engineer", []string{"injuneer"}, 0, norm, w)
	if wr.Correctness != 0 || wr.Pronunciation != 0 || wr.Total != 0 {
		t.Errorf("misheard word scored %+v, want all zero", wr)
	}

	// Silence.
	wr = GradeWord(4, "engineer", nil, align.Sentinel, norm, w)
	if wr.Spoken != SilenceToken || wr.Total != 0 {
		t.Errorf("silent word scored %+v, want silence/zero", wr)
	}
}

func TestTextAccuracy(t *testing.T) {
	ref := []string{"safety", "rules", "must", "be", "followed"}

	if got := TextAccuracy(ref, ref); got != 100 {
		t.Errorf("identical accuracy = %f, want 100", got)
	}
	if got := TextAccuracy(ref, nil); got != 0 {
		t.Errorf("empty hypothesis accuracy = %f, want 0", got)
	}
	// One substitution out of five words.
	hyp := []string{"safety", "rules", "must", "be", "follow"}
	if got := TextAccuracy(ref, hyp); math.Abs(got-80) > 1e-9 {
		t.Errorf("one-substitution accuracy = %f, want 80", got)
	}
	if got := TextAccuracy(nil, hyp); got != 0 {
		t.Errorf("empty reference accuracy = %f, want 0", got)
	}
}
