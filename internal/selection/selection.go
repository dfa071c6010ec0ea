// Package selection holds the diagnoses a user has confirmed, each with the
// symptoms cited for it.
package selection

import "github.com/abhisek/nandadx/internal/diagnosis"

// Entry is one confirmed diagnosis and its symptoms in confirmation order.
type Entry struct {
	Diagnosis string   `json:"diagnosis"`
	Symptoms  []string `json:"symptoms"`
}

// Set is an insertion-ordered map of diagnosis to symptoms plus an optional
// custom diagnosis. The zero value is ready to use.
type Set struct {
	order    []string
	symptoms map[string][]string
	custom   string
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Toggle confirms symptom for diag, or withdraws it if already confirmed.
// It reports whether the pair is selected afterwards. A diagnosis whose last
// symptom is withdrawn leaves the set.
func (s *Set) Toggle(diag, symptom string) bool {
	if s.symptoms == nil {
		s.symptoms = make(map[string][]string)
	}
	list, ok := s.symptoms[diag]
	for i, sym := range list {
		if sym == symptom {
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(s.symptoms, diag)
				s.removeOrder(diag)
			} else {
				s.symptoms[diag] = list
			}
			return false
		}
	}
	if !ok {
		s.order = append(s.order, diag)
	}
	s.symptoms[diag] = append(list, symptom)
	return true
}

// Add confirms symptom for diag if it is not already confirmed.
func (s *Set) Add(diag, symptom string) {
	if !s.Has(diag, symptom) {
		s.Toggle(diag, symptom)
	}
}

// Has reports whether symptom is confirmed for diag.
func (s *Set) Has(diag, symptom string) bool {
	for _, sym := range s.symptoms[diag] {
		if sym == symptom {
			return true
		}
	}
	return false
}

func (s *Set) removeOrder(diag string) {
	for i, d := range s.order {
		if d == diag {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}

// SetCustom stores a free-text diagnosis. An empty text clears it.
func (s *Set) SetCustom(text string) {
	s.custom = text
}

// Custom returns the free-text diagnosis, if any.
func (s *Set) Custom() string {
	return s.custom
}

// Len returns the number of entries, including the custom diagnosis.
func (s *Set) Len() int {
	n := len(s.order)
	if s.custom != "" {
		n++
	}
	return n
}

// Entries returns the confirmed diagnoses in first-confirmation order. The
// custom diagnosis, if set, comes last under diagnosis.CustomKey with the
// free text as its only symptom.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, s.Len())
	for _, d := range s.order {
		syms := make([]string, len(s.symptoms[d]))
		copy(syms, s.symptoms[d])
		out = append(out, Entry{Diagnosis: d, Symptoms: syms})
	}
	if s.custom != "" {
		out = append(out, Entry{Diagnosis: diagnosis.CustomKey, Symptoms: []string{s.custom}})
	}
	return out
}

// Clear empties the set.
func (s *Set) Clear() {
	s.order = nil
	s.symptoms = nil
	s.custom = ""
}
