// Command speakscore scores one recording against a question from the
// built-in bank and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/peterbourgon/ff/v3"

	speakscore "github.com/englab/speakscore"
	"github.com/englab/speakscore/asr"
	"github.com/englab/speakscore/assets"
	"github.com/englab/speakscore/audio"
	"github.com/englab/speakscore/feature"
	"github.com/englab/speakscore/grade"
	"github.com/englab/speakscore/prosody"
)

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("speakscore", flag.ExitOnError)
	var (
		_        = fs.String("config", "", "config file (optional), json format")
		assetDir = fs.String("assets", "assets", "directory holding reference recordings")
		wavPath  = fs.String("wav", "", "recording to score (wav, or anything ffmpeg reads)")
		question = fs.Int("question", 0, "question id from the built-in bank")
		position = fs.Int("position", 1, "1-based word position for word questions")
		asrKind  = fs.String("asr", "stub", "transcriber: stub, google, or exec")
		asrText  = fs.String("asr-text", "", "canned transcription for the stub transcriber")
		asrBin   = fs.String("asr-bin", "", "recognizer binary for the exec transcriber")
		language = fs.String("lang", "en-US", "recognition language for google")
		timeout  = fs.Duration("timeout", 30*time.Second, "per-submission time limit")
		verbose  = fs.Bool("v", false, "verbose logging")
	)
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("SPEAKSCORE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *wavPath == "" || *question == 0 {
		fmt.Fprintln(os.Stderr, "Usage: speakscore -wav AUDIO -question ID [-assets DIR]")
		fs.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var q grade.Question
	found := false
	for _, cand := range grade.DefaultBank() {
		if cand.ID == *question {
			q, found = cand, true
			break
		}
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: unknown question id %d\n", *question)
		os.Exit(1)
	}

	transcriber, cleanup, err := newTranscriber(ctx, *asrKind, *asrText, *asrBin, *language)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	store, err := assets.Load(*assetDir, q.RefAssets, feature.DefaultConfig(),
		prosody.NewAnalyzer(prosody.DefaultConfig()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := []speakscore.Option{speakscore.WithTimeout(*timeout)}
	if *verbose {
		logger := log.New("speakscore")
		logger.SetLevel(log.DEBUG)
		opts = append(opts, speakscore.WithLogger(logger))
	}
	engine := speakscore.New(transcriber, store, opts...)

	w, err := audio.Load(ctx, *wavPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var result any
	if q.Type == grade.WordPronunciation {
		result, err = engine.ScoreWord(ctx, q, *position, w)
	} else {
		result, err = engine.ScoreQuestion(ctx, q, w)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func newTranscriber(ctx context.Context, kind, text, bin, language string) (asr.Transcriber, func(), error) {
	switch kind {
	case "stub":
		return asr.Stub{Text: text}, func() {}, nil
	case "exec":
		if bin == "" {
			return nil, nil, fmt.Errorf("-asr-bin is required for the exec transcriber")
		}
		return asr.Exec{Bin: bin}, func() {}, nil
	case "google":
		g, err := asr.NewGoogle(ctx, language)
		if err != nil {
			return nil, nil, err
		}
		return g, func() { g.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown transcriber %q", kind)
	}
}
