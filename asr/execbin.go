package asr

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/englab/speakscore/audio"
)

// Exec shells out to a local recognizer binary that accepts a WAV path as
// its final argument and prints the transcript on stdout. Useful for
// self-hosted models without a Go SDK.
type Exec struct {
	Bin  string
	Args []string
}

// Transcribe writes the waveform to a temporary WAV, invokes the binary
// and tokenizes its stdout. The temp file is removed on all exit paths.
func (e Exec) Transcribe(ctx context.Context, w audio.Waveform) ([]string, error) {
	tmp, err := os.CreateTemp("", "speakscore-asr-*.wav")
	if err != nil {
		return nil, errors.Wrap(err, "create temp wav")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := audio.WriteWAV(tmp, w); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(err, "close temp wav")
	}

	args := append(append([]string{}, e.Args...), tmpPath)
	out, err := exec.CommandContext(ctx, e.Bin, args...).Output()
	if err != nil {
		return nil, errors.Wrapf(err, "run %s", e.Bin)
	}
	return Tokens(string(out)), nil
}
