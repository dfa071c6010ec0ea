// Package session tracks the state of one evaluation form from intake to
// save.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/selection"
	"github.com/abhisek/nandadx/internal/suggest"
)

// Rating bounds for the application evaluation.
const (
	MinRating = 1
	MaxRating = 5
)

// Phase is the step of the form the user is on.
type Phase int

const (
	PhaseIntake      Phase = iota // Entering initials and symptoms
	PhaseSuggestions              // Confirming suggested diagnoses
	PhaseReview                   // Care instructions, observations, rating
	PhaseSaved                    // Record written
)

// Suggester produces diagnosis suggestions for selected symptoms.
type Suggester interface {
	Suggest(selected []string, threshold float64) ([]suggest.Entry, error)
}

// State tracks one evaluation session from intake to save.
type State struct {
	// ID is the UUID shared by every row this session records.
	ID string

	// Initials identifies the user. May be empty.
	Initials string

	// Symptoms are the selected symptoms in selection order.
	Symptoms []string

	// Suggestions is the latest output of the suggestion engine.
	Suggestions []suggest.Entry

	// Selection holds the confirmed diagnoses.
	Selection *selection.Set

	// Observations is free text saved with every row.
	Observations string

	// Rating is the user's evaluation of the application, 1..5.
	Rating int

	// StartTime is stamped when suggestions are first computed. Zero until then.
	StartTime time.Time

	// Phase is the current form step.
	Phase Phase

	// LastErr is the most recent save failure, cleared on success.
	LastErr error

	now func() time.Time
}

// NewState creates a session with a fresh UUID and the default rating.
func NewState() *State {
	return &State{
		ID:        uuid.NewString(),
		Selection: selection.New(),
		Rating:    MinRating,
		Phase:     PhaseIntake,
		now:       time.Now,
	}
}

// ToggleSymptom adds or removes a symptom, keeping selection order.
// It reports whether the symptom is selected afterwards.
func (s *State) ToggleSymptom(symptom string) bool {
	for i, sym := range s.Symptoms {
		if sym == symptom {
			s.Symptoms = append(s.Symptoms[:i:i], s.Symptoms[i+1:]...)
			return false
		}
	}
	s.Symptoms = append(s.Symptoms, symptom)
	return true
}

// HasSymptom reports whether symptom is selected.
func (s *State) HasSymptom(symptom string) bool {
	for _, sym := range s.Symptoms {
		if sym == symptom {
			return true
		}
	}
	return false
}

// ComputeSuggestions runs the engine over the selected symptoms. The
// session clock starts on the first call. Confirmed pairs that are no
// longer suggested are dropped from the selection.
func (s *State) ComputeSuggestions(engine Suggester, threshold float64) error {
	entries, err := engine.Suggest(s.Symptoms, threshold)
	if err != nil {
		return fmt.Errorf("compute suggestions: %w", err)
	}
	if s.StartTime.IsZero() && len(s.Symptoms) > 0 {
		s.StartTime = s.now()
	}
	s.Suggestions = entries

	kept := make(map[[2]string]bool, len(entries))
	for _, e := range entries {
		kept[[2]string{e.Diagnosis, e.Symptom}] = true
	}
	for _, e := range s.Selection.Entries() {
		for _, sym := range e.Symptoms {
			if e.Diagnosis == diagnosis.CustomKey {
				continue
			}
			if !kept[[2]string{e.Diagnosis, sym}] {
				s.Selection.Toggle(e.Diagnosis, sym)
			}
		}
	}
	return nil
}

// ToggleSuggestion confirms or withdraws the i-th suggestion.
func (s *State) ToggleSuggestion(i int) (bool, error) {
	if i < 0 || i >= len(s.Suggestions) {
		return false, fmt.Errorf("suggestion %d out of range [0,%d)", i, len(s.Suggestions))
	}
	e := s.Suggestions[i]
	return s.Selection.Toggle(e.Diagnosis, e.Symptom), nil
}

// IsConfirmed reports whether the i-th suggestion is confirmed.
func (s *State) IsConfirmed(i int) bool {
	if i < 0 || i >= len(s.Suggestions) {
		return false
	}
	e := s.Suggestions[i]
	return s.Selection.Has(e.Diagnosis, e.Symptom)
}

// SetRating stores r clamped to [MinRating, MaxRating].
func (s *State) SetRating(r int) {
	s.Rating = ClampRating(r)
}

// ClampRating limits r to [MinRating, MaxRating].
func ClampRating(r int) int {
	return max(MinRating, min(MaxRating, r))
}

// Elapsed returns seconds since StartTime, rounded to two decimals, or 0 if
// the clock never started.
func (s *State) Elapsed() float64 {
	if s.StartTime.IsZero() {
		return 0
	}
	return recorder.RoundElapsed(s.now().Sub(s.StartTime).Seconds())
}

// Selections returns the confirmed diagnoses ordered by their position in
// the suggestion list, whatever order they were ticked in. Symptoms under a
// diagnosis follow the same order. Confirmed pairs no longer suggested keep
// their confirmation order after those; the custom diagnosis comes last.
func (s *State) Selections() []selection.Entry {
	out := make([]selection.Entry, 0, s.Selection.Len())
	index := make(map[string]int)
	placed := make(map[[2]string]bool)
	add := func(diag, sym string) {
		key := [2]string{diag, sym}
		if placed[key] {
			return
		}
		placed[key] = true
		i, ok := index[diag]
		if !ok {
			i = len(out)
			index[diag] = i
			out = append(out, selection.Entry{Diagnosis: diag})
		}
		out[i].Symptoms = append(out[i].Symptoms, sym)
	}
	for _, e := range s.Suggestions {
		if s.Selection.Has(e.Diagnosis, e.Symptom) {
			add(e.Diagnosis, e.Symptom)
		}
	}
	entries := s.Selection.Entries()
	var custom []selection.Entry
	if s.Selection.Custom() != "" {
		custom = entries[len(entries)-1:]
		entries = entries[:len(entries)-1]
	}
	for _, e := range entries {
		for _, sym := range e.Symptoms {
			add(e.Diagnosis, sym)
		}
	}
	out = append(out, custom...)
	return out
}

// Record builds the session record as of now.
func (s *State) Record() recorder.SessionRecord {
	symptoms := make([]string, len(s.Symptoms))
	copy(symptoms, s.Symptoms)
	return recorder.SessionRecord{
		SessionID:      s.ID,
		Initials:       s.Initials,
		Selections:     s.Selections(),
		Symptoms:       symptoms,
		Observations:   s.Observations,
		Rating:         s.Rating,
		ElapsedSeconds: s.Elapsed(),
		RecordedAt:     s.now(),
	}
}

// Recorder persists finished sessions.
type Recorder interface {
	Record(ctx context.Context, rec recorder.SessionRecord) error
}

// Submit records the session. On failure the state is left unchanged apart
// from LastErr so the user can retry.
func Submit(ctx context.Context, s *State, r Recorder) error {
	if err := r.Record(ctx, s.Record()); err != nil {
		s.LastErr = err
		return err
	}
	s.LastErr = nil
	s.Phase = PhaseSaved
	return nil
}
