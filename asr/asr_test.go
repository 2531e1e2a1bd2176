package asr

import (
	"context"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/englab/speakscore/audio"
)

func TestTokens(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"  He  GOES   to college. ", []string{"he", "goes", "to", "college"}},
		{"next week's test", []string{"next", "week's", "test"}},
		{"...", nil},
		{"", nil},
	}
	for _, tc := range cases {
		if got := Tokens(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Tokens(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStub(t *testing.T) {
	w := audio.Waveform{Samples: make([]float64, 100), Rate: audio.SampleRate}

	got, err := Stub{Text: "I forgot MY notebook today"}.Transcribe(context.Background(), w)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	want := []string{"i", "forgot", "my", "notebook", "today"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}

	wantErr := errors.New("model offline")
	if _, err := (Stub{Err: wantErr}).Transcribe(context.Background(), w); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Stub{Text: "x"}).Transcribe(ctx, w); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
