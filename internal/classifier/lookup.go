package classifier

import (
	"errors"
	"fmt"
)

// ErrNotOneHot is returned by Lookup for vectors with more than one active
// feature, which a precomputed table cannot answer.
var ErrNotOneHot = errors.New("lookup model only answers one-hot vectors")

// Lookup is a table of precomputed probabilities: one row per feature for
// the vector where only that feature is set, plus a baseline row for the
// all-zero vector.
type Lookup struct {
	rows     [][]float64
	baseline []float64
	classes  int
}

var _ Classifier = (*Lookup)(nil)

// NewLookup builds a lookup model. rows[i] is the distribution for the
// one-hot vector of feature i. A nil baseline means all zeros.
func NewLookup(rows [][]float64, baseline []float64) (*Lookup, error) {
	classes := len(baseline)
	for i, r := range rows {
		if classes == 0 {
			classes = len(r)
		}
		if len(r) != classes {
			return nil, fmt.Errorf("row %d: %d classes, want %d", i, len(r), classes)
		}
	}
	if baseline == nil {
		baseline = make([]float64, classes)
	}
	return &Lookup{rows: rows, baseline: baseline, classes: classes}, nil
}

// Classes returns the row width.
func (l *Lookup) Classes() int {
	return l.classes
}

// PredictProba returns the stored row for the single active feature.
func (l *Lookup) PredictProba(features []float32) ([]float64, error) {
	if len(features) != len(l.rows) {
		return nil, fmt.Errorf("vector has %d features, lookup has %d", len(features), len(l.rows))
	}
	active := -1
	for i, v := range features {
		if v == 0 {
			continue
		}
		if v != 1 || active >= 0 {
			return nil, ErrNotOneHot
		}
		active = i
	}
	src := l.baseline
	if active >= 0 {
		src = l.rows[active]
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out, nil
}
