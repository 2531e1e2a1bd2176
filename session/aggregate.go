package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/englab/speakscore/grade"
)

// SkillScore is one attempted skill's percentage.
type SkillScore struct {
	Skill   string  `json:"skill"`
	Percent float64 `json:"percent"`
}

// TestSessionScore is the immutable aggregate for one completed session.
// A resubmission produces a new record, never an update.
type TestSessionScore struct {
	ID        uuid.UUID    `json:"id"`
	Skills    []SkillScore `json:"skills"`
	Overall   float64      `json:"overall"`
	Level     string       `json:"level"`
	Feedback  string       `json:"feedback"`
	CreatedAt time.Time    `json:"created_at"`
}

// Builder accumulates immutable per-question and per-skill results and
// computes the final aggregate in one pure step. Skills never attempted
// are simply absent: they are excluded from the denominator rather than
// averaged in as zero, so a partially-completed assessment is not unfairly
// dragged down by missing work.
type Builder struct {
	scale     Scale
	skills    []SkillScore
	questions []grade.QuestionResult
}

// NewBuilder returns a builder using the given leveling scale.
func NewBuilder(scale Scale) *Builder {
	return &Builder{scale: scale}
}

// AddSkill records an attempted skill's percentage.
func (b *Builder) AddSkill(skill string, percent float64) *Builder {
	b.skills = append(b.skills, SkillScore{Skill: skill, Percent: percent})
	return b
}

// AddQuestion records a graded speaking question. All added questions are
// folded into one "speaking" skill at Finalize.
func (b *Builder) AddQuestion(res grade.QuestionResult) *Builder {
	b.questions = append(b.questions, res)
	return b
}

// QuestionPercent converts a question result to a percentage of its max.
func QuestionPercent(res grade.QuestionResult) float64 {
	if res.Max == 0 {
		return 0
	}
	return res.Total / res.Max * 100
}

// Finalize computes the aggregate: speaking questions collapse to their
// mean percentage, the overall score is the mean of attempted skills only,
// and the level and feedback come from the scale.
func (b *Builder) Finalize() TestSessionScore {
	skills := make([]SkillScore, len(b.skills))
	copy(skills, b.skills)

	if len(b.questions) > 0 {
		sum := 0.0
		for _, q := range b.questions {
			sum += QuestionPercent(q)
		}
		skills = append(skills, SkillScore{
			Skill:   "speaking",
			Percent: sum / float64(len(b.questions)),
		})
	}

	overall := 0.0
	if len(skills) > 0 {
		for _, s := range skills {
			overall += s.Percent
		}
		overall /= float64(len(skills))
	}

	tier := b.scale.Classify(overall)
	return TestSessionScore{
		ID:        uuid.New(),
		Skills:    skills,
		Overall:   overall,
		Level:     tier.Level,
		Feedback:  tier.Feedback,
		CreatedAt: time.Now().UTC(),
	}
}
