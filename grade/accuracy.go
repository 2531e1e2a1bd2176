package grade

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// wordErrorOptions uses unit costs for insert/delete/substitute, the usual
// word-error-rate convention (the library default charges substitution 2).
var wordErrorOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: func(a, b rune) bool { return a == b },
}

// TextAccuracy returns a 0-100 similarity between reference and hypothesis
// token sequences: 100 * (1 - wordEditDistance/len(ref)), floored at 0.
// Tokens are mapped onto a shared rune vocabulary so the edit distance
// operates on whole words, not characters.
func TextAccuracy(ref, hyp []string) float64 {
	if len(ref) == 0 {
		return 0
	}

	vocab := make(map[string]rune, len(ref)+len(hyp))
	next := rune(1)
	encode := func(tokens []string) []rune {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			r, ok := vocab[tok]
			if !ok {
				r = next
				vocab[tok] = r
				next++
			}
			out[i] = r
		}
		return out
	}

	dist := levenshtein.DistanceForStrings(encode(ref), encode(hyp), wordErrorOptions)
	acc := (1 - float64(dist)/float64(len(ref))) * 100
	if acc < 0 {
		return 0
	}
	return acc
}
