// Package classifier loads pre-trained diagnosis classifiers and exposes
// their per-class probabilities. Models are trained and exported elsewhere;
// this package only reads them.
package classifier

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedArtifact is returned for model files this package cannot read.
	ErrUnsupportedArtifact = errors.New("unsupported model artifact")
	// ErrFeatureMismatch is returned when an artifact's feature list differs
	// from the attribute table header.
	ErrFeatureMismatch = errors.New("model features do not match attribute table")
	// ErrClassMismatch is returned when an artifact predicts a different
	// number of classes than the label column defines.
	ErrClassMismatch = errors.New("model classes do not match diagnosis labels")
)

// Classifier returns class probabilities for a feature vector.
// Probabilities are indexed by class in label-encoder order.
type Classifier interface {
	PredictProba(features []float32) ([]float64, error)

	// Classes returns the number of classes predicted, or 0 if unknown
	// until the first prediction.
	Classes() int
}

// Manifest describes a loaded artifact.
type Manifest struct {
	Kind     string
	Version  string
	Features []string
	Classes  int
}

// CheckCompat verifies that a loaded artifact agrees with the attribute
// table and label mapping. Fields the artifact does not declare are skipped.
func CheckCompat(m *Manifest, clf Classifier, features []string, classes int) error {
	if m != nil && len(m.Features) > 0 {
		if len(m.Features) != len(features) {
			return fmt.Errorf("%w: model has %d features, table has %d",
				ErrFeatureMismatch, len(m.Features), len(features))
		}
		for i := range features {
			if m.Features[i] != features[i] {
				return fmt.Errorf("%w: position %d is %q in model, %q in table",
					ErrFeatureMismatch, i, m.Features[i], features[i])
			}
		}
	}
	if n := clf.Classes(); n > 0 && n != classes {
		return fmt.Errorf("%w: model predicts %d classes, labels define %d",
			ErrClassMismatch, n, classes)
	}
	return nil
}

func normalize(counts []float64) []float64 {
	var sum float64
	for _, c := range counts {
		sum += c
	}
	out := make([]float64, len(counts))
	if sum == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = c / sum
	}
	return out
}
