// Command refprep precomputes feature sequences for reference recordings so
// the scoring service can skip MFCC extraction for assets at startup. Each
// NAME.wav in the asset directory gains a sibling NAME.wav.feat gob file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"github.com/englab/speakscore/assets"
	"github.com/englab/speakscore/audio"
	"github.com/englab/speakscore/feature"
)

func main() {
	fs := flag.NewFlagSet("refprep", flag.ExitOnError)
	var (
		assetDir = fs.String("assets", "assets", "directory holding reference recordings")
		force    = fs.Bool("force", false, "recompute even when a .feat file already exists")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("SPEAKSCORE")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entries, err := os.ReadDir(*assetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := feature.DefaultConfig()
	done := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".wav") {
			continue
		}
		featPath := filepath.Join(*assetDir, name+".feat")
		if !*force {
			if _, err := os.Stat(featPath); err == nil {
				continue
			}
		}

		w, err := audio.ReadWAVFile(filepath.Join(*assetDir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			os.Exit(1)
		}
		feats, err := feature.Extract(audio.Canonical(w), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			os.Exit(1)
		}
		if err := assets.WriteFeatures(featPath, feats); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d frames\n", name, len(feats))
		done++
	}
	fmt.Printf("prepared %d asset(s)\n", done)
}
