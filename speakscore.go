// Package speakscore scores spoken-English assessment recordings. A single
// Engine is built once per process from a transcriber and a reference-asset
// store and is safe for concurrent use; each submission flows through
// preprocessing, concurrent lexical (ASR) and acoustic (MFCC+DTW, prosody)
// branches, and a per-question grading strategy.
package speakscore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/englab/speakscore/align"
	"github.com/englab/speakscore/asr"
	"github.com/englab/speakscore/assets"
	"github.com/englab/speakscore/audio"
	"github.com/englab/speakscore/feature"
	"github.com/englab/speakscore/grade"
	"github.com/englab/speakscore/prosody"
	"github.com/englab/speakscore/score"
	"github.com/englab/speakscore/session"
)

// Engine is the top-level scorer.
type Engine struct {
	Transcriber asr.Transcriber
	Store       *assets.Store
	FeatCfg     feature.Config
	ProsCfg     prosody.Config

	analyzer *prosody.Analyzer
	wordNorm score.Normalizer // 0-10 pronunciation scale for word items
	sentNorm score.Normalizer // 0-100 scale for sentence-mode scoring
	scale    session.Scale
	logger   *log.Logger
	workers  int
	timeout  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithFeatureConfig sets custom MFCC parameters.
func WithFeatureConfig(cfg feature.Config) Option {
	return func(e *Engine) {
		e.FeatCfg = cfg
	}
}

// WithProsodyConfig sets custom pitch-tracking parameters.
func WithProsodyConfig(cfg prosody.Config) Option {
	return func(e *Engine) {
		e.ProsCfg = cfg
	}
}

// WithMaxDistance sets the decay constant of both score normalizers.
func WithMaxDistance(d float64) Option {
	return func(e *Engine) {
		e.wordNorm.MaxDistance = d
		e.sentNorm.MaxDistance = d
	}
}

// WithScale sets the leveling scale used by NewSession.
func WithScale(s session.Scale) Option {
	return func(e *Engine) {
		e.scale = s
	}
}

// WithLogger attaches a logger. The Engine is silent by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithWorkers bounds batch-scoring concurrency.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTimeout bounds the wall time of a single submission. Zero disables.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// New creates an Engine. The store must already hold every reference asset
// named by the questions the engine will score.
func New(t asr.Transcriber, store *assets.Store, opts ...Option) *Engine {
	e := &Engine{
		Transcriber: t,
		Store:       store,
		FeatCfg:     feature.DefaultConfig(),
		ProsCfg:     prosody.DefaultConfig(),
		wordNorm:    score.NewNormalizer(10),
		sentNorm:    score.NewNormalizer(100),
		scale:       session.DefaultScale(),
		workers:     4,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.analyzer = prosody.NewAnalyzer(e.ProsCfg)
	if e.logger == nil {
		e.logger = log.New("speakscore")
		e.logger.SetLevel(log.OFF)
	}
	return e
}

// Submission is one recording to score against one question.
type Submission struct {
	ID       uuid.UUID
	Question grade.Question
	Audio    audio.Waveform
	// Position selects the expected word for WordPronunciation items
	// (1-based); ignored for other question types.
	Position int
}

// NewSubmission assigns a fresh ID.
func NewSubmission(q grade.Question, w audio.Waveform, position int) Submission {
	return Submission{ID: uuid.New(), Question: q, Audio: w, Position: position}
}

// NewSession returns a result builder using the engine's leveling scale.
func (e *Engine) NewSession() *session.Builder {
	return session.NewBuilder(e.scale)
}

// ScoreQuestion scores one utterance against a sentence-level question
// (rearrangement, phrase reading, sentence reading, grammar correction).
// A silent recording scores zero immediately. The lexical branch and the
// prosodic branch run concurrently; if the context expires before both
// finish, the zero result comes back flagged for manual review. Errors are
// reserved for configuration defects such as a missing reference asset.
func (e *Engine) ScoreQuestion(ctx context.Context, q grade.Question, w audio.Waveform) (*grade.QuestionResult, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	// Gate on the recorded level before peak normalization: a faint
	// sub-threshold recording would otherwise be amplified past the floor.
	w = w.Resample(audio.SampleRate)
	if w.IsSilent() {
		e.logger.Infof("question %d: silent recording", q.ID)
		return grade.ZeroResult(q, false), nil
	}
	w = w.Normalize()

	var ref *assets.Reference
	if len(q.RefAssets) > 0 {
		r, err := e.Store.Get(q.RefAssets[0])
		if err != nil {
			return nil, errors.Wrapf(err, "question %d", q.ID)
		}
		ref = r
	}

	var (
		tokens  []string
		profile prosody.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		toks, err := e.Transcriber.Transcribe(gctx, w)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			// Recognizer trouble reads as an empty transcription.
			e.logger.Warnf("question %d: transcription failed: %v", q.ID, err)
			return nil
		}
		tokens = toks
		return nil
	})
	g.Go(func() error {
		profile = e.analyzer.Analyze(w)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		e.logger.Warnf("question %d: aborted: %v", q.ID, err)
		return grade.ZeroResult(q, true), nil
	}

	words, total := grade.Grade(q, tokens)
	res := &grade.QuestionResult{
		QuestionID: q.ID,
		Words:      words,
		Transcript: tokens,
		Total:      total,
		Max:        q.MaxScore(),
	}
	if ref != nil {
		lexical := grade.TextAccuracy(q.Expected, tokens)
		res.Accent = prosody.AccentScore(profile, ref.Profile, lexical)
	}
	return res, nil
}

// ScoreWord scores one recording of one prompted word (position is 1-based
// into the question's expected words). The transcription must match the
// expected word exactly before any pronunciation credit is given; the
// pronunciation score comes from the DTW distance against the word's
// reference recording.
func (e *Engine) ScoreWord(ctx context.Context, q grade.Question, position int, w audio.Waveform) (grade.WordResult, error) {
	if position < 1 || position > len(q.Expected) {
		return grade.WordResult{}, errors.Errorf("question %d: position %d out of range", q.ID, position)
	}
	expected := q.Expected[position-1]

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	w = w.Resample(audio.SampleRate)
	if w.IsSilent() {
		return grade.GradeWord(position, expected, nil, align.Sentinel, e.wordNorm, q.Weights), nil
	}
	w = w.Normalize()

	if position > len(q.RefAssets) {
		return grade.WordResult{}, errors.Errorf("question %d: no reference asset for position %d", q.ID, position)
	}
	ref, err := e.Store.Get(q.RefAssets[position-1])
	if err != nil {
		return grade.WordResult{}, errors.Wrapf(err, "question %d", q.ID)
	}

	var (
		tokens   []string
		distance = align.Sentinel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		toks, err := e.Transcriber.Transcribe(gctx, w)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			e.logger.Warnf("word %q: transcription failed: %v", expected, err)
			return nil
		}
		tokens = toks
		return nil
	})
	g.Go(func() error {
		feats, err := feature.Extract(w, e.FeatCfg)
		if err != nil {
			// Too little signal keeps the sentinel distance.
			e.logger.Debugf("word %q: %v", expected, err)
			return nil
		}
		distance = align.Distance(feats, ref.Features)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		e.logger.Warnf("word %q: aborted: %v", expected, err)
		return grade.GradeWord(position, expected, nil, align.Sentinel, e.wordNorm, q.Weights), nil
	}

	return grade.GradeWord(position, expected, tokens, distance, e.wordNorm, q.Weights), nil
}

// ReadingScore is the sentence-mode result for one read-aloud recording.
type ReadingScore struct {
	Transcript    []string `json:"transcript,omitempty"`
	TextAccuracy  float64  `json:"text_accuracy"`
	Pronunciation float64  `json:"pronunciation"`
	Accent        float64  `json:"accent"`
	Final         float64  `json:"final"`
}

// ScoreReading scores a read-aloud recording in sentence mode: word-level
// text accuracy against the expected tokens, a pronunciation score blending
// the mean-pitch comparison with the DTW spectral distance and scaled by
// completeness, an accent score, and their mean as the final score.
func (e *Engine) ScoreReading(ctx context.Context, expected []string, refName string, w audio.Waveform) (*ReadingScore, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	w = w.Resample(audio.SampleRate)
	if w.IsSilent() {
		return &ReadingScore{}, nil
	}
	w = w.Normalize()

	ref, err := e.Store.Get(refName)
	if err != nil {
		return nil, err
	}

	var (
		tokens   []string
		profile  prosody.Profile
		distance = align.Sentinel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		toks, err := e.Transcriber.Transcribe(gctx, w)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			e.logger.Warnf("reading %q: transcription failed: %v", refName, err)
			return nil
		}
		tokens = toks
		return nil
	})
	g.Go(func() error {
		profile = e.analyzer.Analyze(w)
		feats, err := feature.Extract(w, e.FeatCfg)
		if err != nil {
			e.logger.Debugf("reading %q: %v", refName, err)
			return nil
		}
		distance = align.Distance(feats, ref.Features)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		e.logger.Warnf("reading %q: aborted: %v", refName, err)
		return &ReadingScore{}, nil
	}

	accuracy := grade.TextAccuracy(expected, tokens)
	praat := prosody.MeanPitchScore(profile, ref.Profile)
	spectral := e.sentNorm.Score(distance)
	pron := (0.6*praat + 0.4*spectral) * prosody.Completeness(len(expected), len(tokens))
	accent := prosody.AccentScore(profile, ref.Profile, accuracy)

	return &ReadingScore{
		Transcript:    tokens,
		TextAccuracy:  accuracy,
		Pronunciation: pron,
		Accent:        accent,
		Final:         (accuracy + pron + accent) / 3,
	}, nil
}

// ScoreBatch scores submissions concurrently with bounded parallelism.
// Results keep the order of the input slice. Word-pronunciation submissions
// grade the single word named by their Position.
func (e *Engine) ScoreBatch(ctx context.Context, subs []Submission) ([]*grade.QuestionResult, error) {
	results := make([]*grade.QuestionResult, len(subs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			res, err := e.score(gctx, sub)
			if err != nil {
				return errors.Wrapf(err, "submission %s", sub.ID)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) score(ctx context.Context, sub Submission) (*grade.QuestionResult, error) {
	q := sub.Question
	if q.Type != grade.WordPronunciation {
		return e.ScoreQuestion(ctx, q, sub.Audio)
	}
	wr, err := e.ScoreWord(ctx, q, sub.Position, sub.Audio)
	if err != nil {
		return nil, err
	}
	return &grade.QuestionResult{
		QuestionID: q.ID,
		Words:      []grade.WordResult{wr},
		Total:      wr.Total,
		Max:        q.Weights.PerUnit,
	}, nil
}
