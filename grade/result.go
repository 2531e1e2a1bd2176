package grade

import "math"

// SilenceToken marks positions where no token was spoken.
const SilenceToken = "[silence]"

// WordResult is the immutable grading record for one expected position.
// Sub-scores are bounded by the question's weight split; Total never
// exceeds Weights.PerUnit.
type WordResult struct {
	Position      int     `json:"position"` // 1-based
	Expected      string  `json:"expected"`
	Spoken        string  `json:"spoken"`
	Correctness   float64 `json:"correctness,omitempty"`
	Fluency       float64 `json:"fluency,omitempty"`
	Grammar       float64 `json:"grammar,omitempty"`
	Coherence     float64 `json:"coherence,omitempty"`
	Pronunciation float64 `json:"pronunciation,omitempty"`
	Total         float64 `json:"total"`
}

// QuestionResult aggregates the per-position records for one question.
// Created once per grading pass and never mutated afterward.
type QuestionResult struct {
	QuestionID  int          `json:"question_id"`
	Words       []WordResult `json:"words,omitempty"`
	Transcript  []string     `json:"transcript,omitempty"`
	Total       float64      `json:"total"`
	Max         float64      `json:"max"`
	Accent      float64      `json:"accent,omitempty"`
	NeedsReview bool         `json:"needs_review,omitempty"`
}

// ZeroResult returns an empty-scored result for a question, used when the
// recording is silent, unreadable, or scoring was aborted.
func ZeroResult(q Question, needsReview bool) *QuestionResult {
	return &QuestionResult{
		QuestionID:  q.ID,
		Total:       0,
		Max:         q.MaxScore(),
		NeedsReview: needsReview,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
