package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the artifact format major version this build reads.
const SupportedMajor = "v1"

// Options configures Load.
type Options struct {
	// ONNX settings; ignored for JSON artifacts.
	ONNX ONNXOptions
}

type header struct {
	Kind          string   `json:"kind"`
	FormatVersion string   `json:"format_version"`
	Features      []string `json:"features,omitempty"`
	NClasses      int      `json:"n_classes,omitempty"`
}

type decodeFunc func(raw []byte, h header) (Classifier, error)

var decoders = map[string]decodeFunc{
	"lookup": decodeLookup,
	"tree":   decodeTree,
	"forest": decodeForest,
}

// Load reads a model artifact. The format is chosen by file extension:
// ".onnx" runs through ONNX Runtime, ".json" dispatches on its "kind" field.
// The caller must Close the returned classifier if it implements io.Closer.
func Load(path string, opts Options) (Classifier, *Manifest, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".onnx":
		clf, err := NewONNX(path, opts.ONNX)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		return clf, &Manifest{Kind: "onnx", Classes: opts.ONNX.Classes}, nil
	case ".json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		clf, m, err := Decode(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
		}
		return clf, m, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedArtifact, filepath.Base(path))
	}
}

// Decode parses a JSON artifact.
func Decode(raw []byte) (Classifier, *Manifest, error) {
	var h header
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, nil, fmt.Errorf("parse artifact: %w", err)
	}
	decode, ok := decoders[h.Kind]
	if !ok {
		return nil, nil, fmt.Errorf("%w: kind %q", ErrUnsupportedArtifact, h.Kind)
	}
	version, err := checkVersion(h.FormatVersion)
	if err != nil {
		return nil, nil, err
	}
	if err := validateArtifact(h.Kind, raw); err != nil {
		return nil, nil, err
	}
	clf, err := decode(raw, h)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", h.Kind, err)
	}
	if h.NClasses > 0 && clf.Classes() != h.NClasses {
		return nil, nil, fmt.Errorf("%w: declares %d classes, model has %d",
			ErrClassMismatch, h.NClasses, clf.Classes())
	}
	return clf, &Manifest{
		Kind:     h.Kind,
		Version:  version,
		Features: h.Features,
		Classes:  clf.Classes(),
	}, nil
}

func checkVersion(v string) (string, error) {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: invalid format_version %q", ErrUnsupportedArtifact, v)
	}
	if semver.Major(v) != SupportedMajor {
		return "", fmt.Errorf("%w: format_version %s, want %s.x", ErrUnsupportedArtifact, v, SupportedMajor)
	}
	return v, nil
}

func decodeLookup(raw []byte, h header) (Classifier, error) {
	var a struct {
		Rows     map[string][]float64 `json:"rows"`
		Baseline []float64            `json:"baseline"`
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	rows := make([][]float64, len(h.Features))
	for i, f := range h.Features {
		r, ok := a.Rows[f]
		if !ok {
			return nil, fmt.Errorf("no row for feature %q", f)
		}
		rows[i] = r
	}
	for name := range a.Rows {
		if !contains(h.Features, name) {
			return nil, fmt.Errorf("row %q is not a declared feature", name)
		}
	}
	return NewLookup(rows, a.Baseline)
}

func decodeTree(raw []byte, h header) (Classifier, error) {
	var a struct {
		Tree Tree `json:"tree"`
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := a.Tree.Validate(len(h.Features)); err != nil {
		return nil, err
	}
	return &a.Tree, nil
}

func decodeForest(raw []byte, h header) (Classifier, error) {
	var a struct {
		Trees []*Tree `json:"trees"`
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	classes := 0
	for i, t := range a.Trees {
		if err := t.Validate(len(h.Features)); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if classes == 0 {
			classes = t.Classes()
		} else if t.Classes() != classes {
			return nil, fmt.Errorf("tree %d: %d classes, want %d", i, t.Classes(), classes)
		}
	}
	return &Forest{Trees: a.Trees}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
