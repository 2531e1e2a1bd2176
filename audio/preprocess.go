package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ConvertToWAV transcodes an arbitrary-format audio file into 16 kHz mono
// 16-bit PCM WAV using ffmpeg. It returns the path of a temporary file and
// a cleanup function; the caller must invoke cleanup on every exit path.
func ConvertToWAV(ctx context.Context, src string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "speakscore-*.wav")
	if err != nil {
		return "", nil, errors.Wrap(err, "create temp wav")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	cleanup := func() { os.Remove(tmpPath) }

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", src,
		"-ac", "1",
		"-ar", "16000",
		"-sample_fmt", "s16",
		tmpPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, errors.Wrapf(err, "ffmpeg convert %s: %s", src, lastLine(out))
	}
	return tmpPath, cleanup, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// Load reads an audio file and returns a mono 16 kHz waveform ready for
// scoring. The signal keeps its recorded level so silence detection still
// sees the true energy; normalize after gating. Non-WAV containers are
// converted through ffmpeg into a temporary file that is removed before
// returning.
func Load(ctx context.Context, path string) (Waveform, error) {
	wavPath := path
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		converted, cleanup, err := ConvertToWAV(ctx, path)
		if err != nil {
			return Waveform{}, err
		}
		defer cleanup()
		wavPath = converted
	}

	w, err := ReadWAVFile(wavPath)
	if err != nil {
		return Waveform{}, err
	}
	return w.Resample(SampleRate), nil
}

// Canonical resamples to the pipeline rate and peak-normalizes. For
// reference recordings only: peak normalization destroys the energy
// evidence the silence gate needs, so student recordings must be gated
// with IsSilent before being normalized.
func Canonical(w Waveform) Waveform {
	return w.Resample(SampleRate).Normalize()
}
