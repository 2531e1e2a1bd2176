package grade

// Grade runs the lexical/grammar strategy for the question type against the
// transcribed tokens. WordPronunciation items are graded per word through
// GradeWord instead; Grade returns an empty result for them.
//
// Empty or nil spoken input is valid: every position reads as silence and
// scores zero.
func Grade(q Question, spoken []string) ([]WordResult, float64) {
	switch q.Type {
	case SentenceRearrangement:
		return gradeBagWithPosition(q, spoken)
	case PhraseReading:
		offset, _ := BestOffset(q.Expected, spoken)
		return gradeExactPositional(q, spoken, offset)
	case SentenceReading:
		return gradeExactPositional(q, spoken, 0)
	case GrammarCorrection:
		return gradePositionalGrammar(q, spoken)
	default:
		return nil, 0
	}
}

// spokenAt returns the token aligned to expected position i under the given
// offset, or SilenceToken when the index falls outside the transcription.
func spokenAt(spoken []string, i, offset int) string {
	idx := i - offset
	if idx < 0 || idx >= len(spoken) {
		return SilenceToken
	}
	return spoken[idx]
}

// BestOffset searches small shifts between the spoken and expected index
// streams and returns the one maximizing exact matches, along with the
// match count. A negative offset means the transcription leads the expected
// stream (e.g. a spurious extra token was recognized at the start). The
// search is bounded to -2..+2 because ASR word-boundary drift is small; a
// full edit-distance alignment is not needed.
func BestOffset(expected, spoken []string) (int, int) {
	bestOffset, bestMatches := 0, 0
	for _, offset := range []int{-2, -1, 0, 1, 2} {
		matches := 0
		for i := range expected {
			if spokenAt(spoken, i, offset) == expected[i] {
				matches++
			}
		}
		if matches > bestMatches {
			bestMatches = matches
			bestOffset = offset
		}
	}
	return bestOffset, bestMatches
}

// gradeExactPositional scores position i by strict equality under the given
// offset. A match earns both correctness and fluency; speaking something
// wrong but non-silent keeps half the fluency credit.
func gradeExactPositional(q Question, spoken []string, offset int) ([]WordResult, float64) {
	results := make([]WordResult, 0, len(q.Expected))
	total := 0.0
	for i, want := range q.Expected {
		got := spokenAt(spoken, i, offset)
		wr := WordResult{Position: i + 1, Expected: want, Spoken: got}
		switch {
		case got == want:
			wr.Correctness = q.Weights.Correctness
			wr.Fluency = q.Weights.Fluency
		case got != SilenceToken:
			wr.Fluency = q.Weights.Fluency / 2
		}
		wr.Total = round2(wr.Correctness + wr.Fluency)
		total += wr.Total
		results = append(results, wr)
	}
	return results, round2(total)
}

// gradeBagWithPosition models rearrangement tasks: using a right word
// anywhere earns grammar credit, using it in the right place additionally
// earns coherence credit.
func gradeBagWithPosition(q Question, spoken []string) ([]WordResult, float64) {
	bag := make(map[string]bool, len(q.Expected))
	for _, w := range q.Expected {
		bag[w] = true
	}

	results := make([]WordResult, 0, len(q.Expected))
	total := 0.0
	for i, want := range q.Expected {
		got := spokenAt(spoken, i, 0)
		wr := WordResult{Position: i + 1, Expected: want, Spoken: got}
		if got != SilenceToken && bag[got] {
			wr.Grammar = q.Weights.Grammar
		}
		if got == want {
			wr.Coherence = q.Weights.Coherence
		}
		wr.Total = round2(wr.Grammar + wr.Coherence)
		total += wr.Total
		results = append(results, wr)
	}
	return results, round2(total)
}

// gradePositionalGrammar scores grammar-correction items: strict positional
// correctness, plus grammar credit that is rule-aware. At a rule position
// the inflected form earns full grammar credit and the bare form half;
// elsewhere any expected-bag member earns it.
func gradePositionalGrammar(q Question, spoken []string) ([]WordResult, float64) {
	bag := make(map[string]bool, len(q.Expected))
	for _, w := range q.Expected {
		bag[w] = true
	}
	rules := make(map[int]GrammarRule, len(q.Rules))
	for _, r := range q.Rules {
		rules[r.Position] = r
	}

	results := make([]WordResult, 0, len(q.Expected))
	total := 0.0
	for i, want := range q.Expected {
		got := spokenAt(spoken, i, 0)
		wr := WordResult{Position: i + 1, Expected: want, Spoken: got}
		if got == want {
			wr.Correctness = q.Weights.Correctness
		}
		if got != SilenceToken {
			if rule, ok := rules[i]; ok {
				switch got {
				case rule.Inflected:
					wr.Grammar = q.Weights.Grammar
				case rule.Bare:
					wr.Grammar = q.Weights.Grammar / 2
				}
			} else if bag[got] {
				wr.Grammar = q.Weights.Grammar
			}
		}
		wr.Total = round2(wr.Correctness + wr.Grammar)
		total += wr.Total
		results = append(results, wr)
	}
	return results, round2(total)
}
