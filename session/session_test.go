package session

import (
	"math"
	"testing"

	"github.com/englab/speakscore/grade"
)

func TestClassifyBoundaries(t *testing.T) {
	scale := DefaultScale()
	cases := []struct {
		percent float64
		level   string
	}{
		{0, "Basic"},
		{39.9, "Basic"},
		{40.0, "Intermediate"},
		{79.9, "Intermediate"},
		{80.0, "Advanced"},
		{100, "Advanced"},
	}
	for _, c := range cases {
		if got := scale.Classify(c.percent).Level; got != c.level {
			t.Errorf("Classify(%v) = %q, want %q", c.percent, got, c.level)
		}
	}
}

func TestFinalizeAttemptedOnly(t *testing.T) {
	// Two of four skills attempted: the overall is the mean of those two,
	// not the sum divided by four.
	got := NewBuilder(DefaultScale()).
		AddSkill("listening", 80).
		AddSkill("reading", 60).
		Finalize()
	if got.Overall != 70 {
		t.Fatalf("Overall = %v, want 70", got.Overall)
	}
	if got.Level != "Intermediate" {
		t.Errorf("Level = %q, want Intermediate", got.Level)
	}
	if len(got.Skills) != 2 {
		t.Errorf("Skills = %d entries, want 2", len(got.Skills))
	}
}

func TestFinalizeQuestionsCollapse(t *testing.T) {
	got := NewBuilder(DefaultScale()).
		AddQuestion(grade.QuestionResult{QuestionID: 1, Total: 80, Max: 100}).
		AddQuestion(grade.QuestionResult{QuestionID: 2, Total: 10, Max: 20}).
		Finalize()
	// (80 + 50) / 2 = 65, one "speaking" skill.
	if math.Abs(got.Overall-65) > 1e-9 {
		t.Fatalf("Overall = %v, want 65", got.Overall)
	}
	if len(got.Skills) != 1 || got.Skills[0].Skill != "speaking" {
		t.Fatalf("Skills = %+v, want single speaking entry", got.Skills)
	}
}

func TestFinalizeEmpty(t *testing.T) {
	got := NewBuilder(DefaultScale()).Finalize()
	if got.Overall != 0 {
		t.Errorf("Overall = %v, want 0", got.Overall)
	}
	if got.Level != "Basic" {
		t.Errorf("Level = %q, want Basic", got.Level)
	}
	if got.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated session ID")
	}
}

func TestQuestionPercentZeroMax(t *testing.T) {
	if got := QuestionPercent(grade.QuestionResult{Total: 5, Max: 0}); got != 0 {
		t.Errorf("QuestionPercent with zero max = %v, want 0", got)
	}
}
