package asr

import (
	"bytes"
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/englab/speakscore/audio"
)

// Google transcribes through Google Cloud Speech-to-Text synchronous
// recognition. The client is constructed once and reused; Close releases it.
type Google struct {
	client   *speech.Client
	language string
}

// NewGoogle creates a Google transcriber. Credentials come from the
// provided options or GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogle(ctx context.Context, language string, opts ...option.ClientOption) (*Google, error) {
	if language == "" {
		language = "en-US"
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create speech client")
	}
	return &Google{client: client, language: language}, nil
}

// Transcribe sends the waveform as LINEAR16 PCM and joins all result
// alternatives into one token stream.
func (g *Google) Transcribe(ctx context.Context, w audio.Waveform) ([]string, error) {
	var buf bytes.Buffer
	if err := audio.WriteWAV(&buf, w); err != nil {
		return nil, errors.Wrap(err, "encode waveform")
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(w.Rate),
			LanguageCode:    g.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: buf.Bytes()},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "recognize")
	}

	var sb strings.Builder
	for _, res := range resp.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		sb.WriteString(res.Alternatives[0].Transcript)
		sb.WriteByte(' ')
	}
	return Tokens(sb.String()), nil
}

// Close releases the underlying gRPC client.
func (g *Google) Close() error {
	return g.client.Close()
}
