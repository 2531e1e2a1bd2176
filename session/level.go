// Package session aggregates per-question and per-skill scores into a
// final test result with a qualitative level and feedback text.
package session

// Tier is one band of a leveling scale: scores at or above Min (and below
// the next tier's Min) map to this level.
type Tier struct {
	Min      float64
	Level    string
	Feedback string
}

// Scale is an ordered set of tiers, lowest Min first. Thresholds are
// configuration: different question types historically used different
// boundaries, so scales are values, not code.
type Scale []Tier

// Classify returns the tier for a score. The lowest tier catches
// everything below the second tier's Min.
func (s Scale) Classify(v float64) Tier {
	if len(s) == 0 {
		return Tier{}
	}
	best := s[0]
	for _, t := range s[1:] {
		if v >= t.Min {
			best = t
		}
	}
	return best
}

// DefaultScale is the placement scale for overall percentages.
func DefaultScale() Scale {
	return Scale{
		{Min: 0, Level: "Basic", Feedback: "Keep practicing! Focus on speaking clearly."},
		{Min: 40, Level: "Intermediate", Feedback: "Good progress. Work on accuracy and fluency."},
		{Min: 80, Level: "Advanced", Feedback: "Excellent command of spoken English."},
	}
}

// PracticeScale is the finer-grained feedback scale used on speaking-only
// results.
func PracticeScale() Scale {
	return Scale{
		{Min: 0, Level: "Needs Practice", Feedback: "Keep practicing! Focus on speaking clearly."},
		{Min: 50, Level: "Fair", Feedback: "You're doing well. Focus on problem areas."},
		{Min: 70, Level: "Good", Feedback: "Good job! Minor improvements needed."},
		{Min: 85, Level: "Excellent", Feedback: "Your pronunciation and grammar are excellent!"},
	}
}

// RawScale maps small raw point totals (out of 5) rather than percentages.
func RawScale() Scale {
	return Scale{
		{Min: 0, Level: "Basic", Feedback: "Keep practicing the fundamentals."},
		{Min: 3, Level: "Intermediate", Feedback: "Good progress. Keep going."},
		{Min: 5, Level: "Advanced", Feedback: "Excellent result."},
	}
}
