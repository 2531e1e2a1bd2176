// Package grade compares transcribed token sequences against expected
// token sequences and awards split-weighted sub-scores per position. The
// per-question algorithms form a small closed set of strategies dispatched
// by question type.
package grade

// QuestionType selects the grading strategy for an assessment item.
type QuestionType int

const (
	// WordPronunciation prompts isolated words; exact lexical match gates
	// DTW-based pronunciation credit. Graded per word via GradeWord.
	WordPronunciation QuestionType = iota
	// SentenceRearrangement awards bag-of-words grammar credit plus
	// positional coherence credit.
	SentenceRearrangement
	// PhraseReading is exact positional matching after a best-offset search
	// that absorbs small ASR word-boundary drift.
	PhraseReading
	// SentenceReading is strict exact positional matching.
	SentenceReading
	// GrammarCorrection is exact positional correctness plus rule-based
	// grammar credit with graded partial credit for bare verb forms.
	GrammarCorrection
)

// Weights holds the per-unit scoring split for a question. Only the
// components relevant to the question type are set; the rest stay zero.
// Exact values are configuration, not invariants.
type Weights struct {
	PerUnit       float64 // maximum points for one expected token
	Correctness   float64
	Fluency       float64
	Grammar       float64
	Coherence     float64
	Pronunciation float64
}

// GrammarRule marks a position where an inflected form is required.
// The inflected form earns full grammar credit, the bare form half.
type GrammarRule struct {
	Position  int // 0-based index into Question.Expected
	Inflected string
	Bare      string
}

// Question is the immutable configuration of one assessment item.
type Question struct {
	ID       int
	Type     QuestionType
	Title    string
	Prompt   string
	Expected []string // expected tokens in order
	Weights  Weights
	Rules    []GrammarRule
	// RefAssets names the reference recordings: one per expected word for
	// WordPronunciation, a single utterance otherwise.
	RefAssets []string
}

// MaxScore returns the maximum total for the question.
func (q Question) MaxScore() float64 {
	return q.Weights.PerUnit * float64(len(q.Expected))
}

// DefaultBank returns the standard five-question speaking assessment.
func DefaultBank() []Question {
	return []Question{
		{
			ID:       1,
			Type:     WordPronunciation,
			Title:    "Word Pronunciation",
			Prompt:   "Read the following words aloud clearly:",
			Expected: []string{"comfortable", "vegetable", "often", "engineer", "laboratory"},
			Weights:  Weights{PerUnit: 20, Correctness: 10, Pronunciation: 10},
			RefAssets: []string{
				"word1.wav", "word2.wav", "word3.wav", "word4.wav", "word5.wav",
			},
		},
		{
			ID:        2,
			Type:      SentenceRearrangement,
			Title:     "Sentence Rearrangement",
			Prompt:    "Rearrange the words to make a correct sentence. Speak the sentence aloud.",
			Expected:  []string{"i", "forgot", "my", "notebook", "today"},
			Weights:   Weights{PerUnit: 20, Grammar: 10, Coherence: 10},
			RefAssets: []string{"q2.wav"},
		},
		{
			ID:        3,
			Type:      PhraseReading,
			Title:     "Phrase Reading",
			Prompt:    "Read the following phrases aloud clearly.",
			Expected:  []string{"an", "honest", "answer", "practical", "exam", "schedule", "next", "week's", "test"},
			Weights:   Weights{PerUnit: 11.1, Correctness: 5.55, Fluency: 5.55},
			RefAssets: []string{"q3.wav"},
		},
		{
			ID:        4,
			Type:      SentenceReading,
			Title:     "Sentence Reading",
			Prompt:    "Read the sentence silently. Then speak it aloud clearly.",
			Expected:  []string{"safety", "rules", "must", "be", "followed", "in", "the", "laboratory"},
			Weights:   Weights{PerUnit: 12.5, Correctness: 6.25, Fluency: 6.25},
			RefAssets: []string{"q4.wav"},
		},
		{
			ID:        5,
			Type:      GrammarCorrection,
			Title:     "Grammar Correction",
			Prompt:    "Correct the sentence and speak it aloud.",
			Expected:  []string{"he", "goes", "to", "college", "every", "day"},
			Weights:   Weights{PerUnit: 20, Correctness: 10, Grammar: 10},
			Rules:     []GrammarRule{{Position: 1, Inflected: "goes", Bare: "go"}},
			RefAssets: []string{"q5.wav"},
		},
	}
}
