// Package assets loads reference recordings and their precomputed feature
// sequences at startup. The store is read-only once built and shared across
// all scoring workers; a missing asset is a deployment defect and fails
// construction rather than surfacing per-request.
package assets

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/englab/speakscore/audio"
	"github.com/englab/speakscore/feature"
	"github.com/englab/speakscore/prosody"
)

// Reference is one named reference recording with everything scoring needs.
type Reference struct {
	Name     string
	Waveform audio.Waveform
	Features [][]float64
	Profile  prosody.Profile
}

// Store holds all references for a question bank.
type Store struct {
	refs map[string]*Reference
}

// Load reads each named WAV from dir, computes features and a prosodic
// profile, and returns the populated store. If a sibling ".feat" file
// exists (written by refprep) its features are used instead of recomputing.
// Any missing or unreadable asset fails the whole load.
func Load(dir string, names []string, cfg feature.Config, analyzer *prosody.Analyzer) (*Store, error) {
	s := &Store{refs: make(map[string]*Reference, len(names))}
	for _, name := range names {
		if _, ok := s.refs[name]; ok {
			continue
		}
		ref, err := loadOne(dir, name, cfg, analyzer)
		if err != nil {
			return nil, errors.Wrapf(err, "reference asset %q", name)
		}
		s.refs[name] = ref
	}
	return s, nil
}

func loadOne(dir, name string, cfg feature.Config, analyzer *prosody.Analyzer) (*Reference, error) {
	w, err := audio.ReadWAVFile(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	w = audio.Canonical(w)

	ref := &Reference{Name: name, Waveform: w, Profile: analyzer.Analyze(w)}

	featPath := filepath.Join(dir, name+".feat")
	if feats, err := ReadFeatures(featPath); err == nil {
		ref.Features = feats
		return ref, nil
	} else if !os.IsNotExist(errors.Cause(err)) {
		return nil, err
	}

	feats, err := feature.Extract(w, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "extract features")
	}
	ref.Features = feats
	return ref, nil
}

// Get returns the reference for name.
func (s *Store) Get(name string) (*Reference, error) {
	ref, ok := s.refs[name]
	if !ok {
		return nil, errors.Errorf("reference asset %q not loaded", name)
	}
	return ref, nil
}

// Names returns the loaded asset names.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.refs))
	for name := range s.refs {
		out = append(out, name)
	}
	return out
}

// WriteFeatures persists a feature sequence as a gob file.
func WriteFeatures(path string, feats [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create feature file")
	}
	if err := gob.NewEncoder(f).Encode(feats); err != nil {
		f.Close()
		return errors.Wrap(err, "encode features")
	}
	return errors.Wrap(f.Close(), "close feature file")
}

// ReadFeatures loads a feature sequence written by WriteFeatures.
func ReadFeatures(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open feature file")
	}
	defer f.Close()
	var feats [][]float64
	if err := gob.NewDecoder(f).Decode(&feats); err != nil {
		return nil, errors.Wrap(err, "decode features")
	}
	return feats, nil
}
