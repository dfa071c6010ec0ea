package diagnosis

import (
	"fmt"
	"sort"
)

// Labels maps diagnosis names to classifier class indices and back.
//
// Classes are numbered in lexicographic order of the distinct names, which
// is how the training pipeline's label encoder assigned them. Any other
// order silently attributes probabilities to the wrong diagnosis.
type Labels struct {
	names []string
	index map[string]int
}

// NewLabels builds the mapping from the raw label column values. Duplicates
// and empty values are dropped.
func NewLabels(values []string) *Labels {
	seen := make(map[string]struct{}, len(values))
	names := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		names = append(names, v)
	}
	sort.Strings(names)

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	return &Labels{names: names, index: index}
}

// Len returns the number of classes.
func (l *Labels) Len() int {
	return len(l.names)
}

// Name returns the diagnosis for a class index.
func (l *Labels) Name(i int) (string, error) {
	if i < 0 || i >= len(l.names) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", i, len(l.names))
	}
	return l.names[i], nil
}

// Index returns the class index of a diagnosis.
func (l *Labels) Index(name string) (int, bool) {
	i, ok := l.index[name]
	return i, ok
}

// Names returns a copy of the diagnosis names in class order.
func (l *Labels) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}
