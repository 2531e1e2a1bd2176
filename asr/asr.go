// Package asr defines the speech-recognition capability boundary. The
// scoring pipeline only ever sees lowercase word tokens; which engine
// produced them is an implementation detail behind the Transcriber
// interface, so grading logic stays testable with a stub.
package asr

import (
	"context"
	"strings"
	"unicode"

	"github.com/englab/speakscore/audio"
)

// Transcriber converts a waveform into lowercase word tokens.
// Implementations must be safe for concurrent use; a failed or empty
// recognition returns an empty token slice, which downstream grading
// treats as "no correct tokens", never as a hard failure.
type Transcriber interface {
	Transcribe(ctx context.Context, w audio.Waveform) ([]string, error)
}

// Tokens normalizes raw recognizer output into scoring tokens: lowercased,
// punctuation stripped, whitespace split. Empty input yields nil.
func Tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Stub is a fixed-output Transcriber for tests and offline runs.
type Stub struct {
	Text string
	Err  error
}

// Transcribe returns the canned tokens regardless of input.
func (s Stub) Transcribe(ctx context.Context, w audio.Waveform) ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Tokens(s.Text), nil
}
