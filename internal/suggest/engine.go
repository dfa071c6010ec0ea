// Package suggest maps selected symptoms to candidate nursing diagnoses.
package suggest

import (
	"fmt"

	"github.com/abhisek/nandadx/internal/classifier"
	"github.com/abhisek/nandadx/internal/dataset"
	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/logger"
)

// DefaultThreshold is the minimum probability, exclusive, for a suggestion.
const DefaultThreshold = 0.1

// Entry is one suggested diagnosis and the symptom that triggered it.
type Entry struct {
	Diagnosis   string  `json:"diagnosis"`
	Symptom     string  `json:"symptom"`
	Probability float64 `json:"probability"`
}

// Message returns the line shown to the user for this suggestion.
func (e Entry) Message() string {
	return diagnosis.SuggestionMessage(e.Diagnosis, e.Symptom)
}

// Engine scores symptoms against a classifier. It is read-only after
// construction.
type Engine struct {
	attrs  *dataset.Attributes
	clf    classifier.Classifier
	labels *diagnosis.Labels
}

// NewEngine creates an engine over the given feature order, classifier and
// label mapping.
func NewEngine(attrs *dataset.Attributes, clf classifier.Classifier, labels *diagnosis.Labels) *Engine {
	return &Engine{attrs: attrs, clf: clf, labels: labels}
}

// Attributes returns the feature order the engine scores against.
func (e *Engine) Attributes() *dataset.Attributes { return e.attrs }

// Labels returns the diagnosis label mapping.
func (e *Engine) Labels() *diagnosis.Labels { return e.labels }

// Suggest scores each selected symptom on its own one-hot vector and returns
// every class whose probability strictly exceeds threshold. Entries follow
// selection order, then class index. Duplicates across symptoms are kept.
func (e *Engine) Suggest(selected []string, threshold float64) ([]Entry, error) {
	entries := []Entry{}
	for _, symptom := range selected {
		vec := make([]float32, e.attrs.Len())
		if i, ok := e.attrs.Index(symptom); ok {
			vec[i] = 1
		} else {
			logger.Warn("symptom %q is not a model attribute; scoring empty vector", symptom)
		}

		probs, err := e.clf.PredictProba(vec)
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", symptom, err)
		}
		for class, p := range probs {
			if p <= threshold {
				continue
			}
			name, err := e.labels.Name(class)
			if err != nil {
				return nil, fmt.Errorf("score %q: %w", symptom, err)
			}
			entries = append(entries, Entry{Diagnosis: name, Symptom: symptom, Probability: p})
		}
	}
	logger.Debug("suggest: %d symptoms, threshold %.2f, %d entries", len(selected), threshold, len(entries))
	return entries, nil
}
