package dataset

import (
	"golang.org/x/text/unicode/norm"
)

// Attributes is the ordered list of symptom names that defines the feature
// layout passed to the classifier. It is immutable once built.
type Attributes struct {
	names  []string
	index  map[string]int
	folded map[string]int
}

// NewAttributes builds an attribute vector from names in feature order.
// When a name repeats, the first position wins.
func NewAttributes(names []string) *Attributes {
	a := &Attributes{
		names:  make([]string, len(names)),
		index:  make(map[string]int, len(names)),
		folded: make(map[string]int, len(names)),
	}
	copy(a.names, names)
	for i, n := range names {
		if _, ok := a.index[n]; !ok {
			a.index[n] = i
		}
		key := norm.NFC.String(n)
		if _, ok := a.folded[key]; !ok {
			a.folded[key] = i
		}
	}
	return a
}

// Len returns the number of features.
func (a *Attributes) Len() int {
	return len(a.names)
}

// Names returns a copy of the symptom names in feature order.
func (a *Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Index returns the feature position of a symptom. Names typed with a
// different Unicode composition (e.g. decomposed accents) still match.
func (a *Attributes) Index(name string) (int, bool) {
	if i, ok := a.index[name]; ok {
		return i, true
	}
	i, ok := a.folded[norm.NFC.String(name)]
	return i, ok
}

// Contains reports whether name is a known symptom.
func (a *Attributes) Contains(name string) bool {
	_, ok := a.Index(name)
	return ok
}
