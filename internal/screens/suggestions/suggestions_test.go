package suggestions

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nandadx/internal/router"
	"github.com/abhisek/nandadx/internal/screens"
	"github.com/abhisek/nandadx/internal/screens/review"
	"github.com/abhisek/nandadx/internal/session"
	"github.com/abhisek/nandadx/internal/suggest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(entries []suggest.Entry) (*SuggestionsScreen, *session.State) {
	state := session.NewState()
	state.Suggestions = entries
	s := New(&screens.Env{Threshold: 0.1}, state)
	s.Init()
	return s, state
}

var sample = []suggest.Entry{
	{Diagnosis: "Risco_de_Infeccao", Symptom: "Febre_alta", Probability: 0.6},
	{Diagnosis: "Padrao_respiratorio_ineficaz", Symptom: "Tosse", Probability: 0.3},
}

func TestSuggestions_ToggleConfirms(t *testing.T) {
	s, state := testScreen(sample)

	s.Update(keyPress('x'))
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('x'))
	if !state.IsConfirmed(0) || !state.IsConfirmed(1) {
		t.Fatal("expected both suggestions confirmed")
	}

	s.Update(keyPress('x'))
	if state.IsConfirmed(1) {
		t.Error("second toggle should withdraw")
	}
	entries := state.Selection.Entries()
	if len(entries) != 1 || entries[0].Diagnosis != "Risco_de_Infeccao" {
		t.Errorf("entries = %v", entries)
	}
}

func TestSuggestions_CustomDiagnosis(t *testing.T) {
	s, state := testScreen(sample)
	s.Update(specialKey(tea.KeyTab))
	for _, r := range "Dor" {
		s.Update(keyPress(r))
	}
	if got := state.Selection.Custom(); got != "Dor" {
		t.Errorf("Custom = %q, want Dor", got)
	}
	// 'x' types into the custom field instead of toggling.
	s.Update(keyPress('x'))
	if state.IsConfirmed(0) {
		t.Error("typing in the custom field must not toggle suggestions")
	}
}

func TestSuggestions_EnterPushesReview(t *testing.T) {
	s, state := testScreen(sample)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want PushScreenMsg", cmd())
	}
	if _, ok := push.Screen.(*review.ReviewScreen); !ok {
		t.Errorf("pushed %T, want review screen", push.Screen)
	}
	if state.Phase != session.PhaseReview {
		t.Errorf("Phase = %v, want PhaseReview", state.Phase)
	}
}

func TestSuggestions_View(t *testing.T) {
	s, _ := testScreen(sample)
	view := s.View(120, 30)
	for _, want := range []string{
		"Diagnóstico: Risco de Infeccao. Fator Relacionado: febre alta",
		"Diagnóstico: Padrao respiratorio ineficaz. Característica Definidora: tosse",
		"60%",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSuggestions_Empty(t *testing.T) {
	s, _ := testScreen(nil)
	s.Update(keyPress('x'))
	if !strings.Contains(s.View(120, 30), "Nenhum diagnóstico") {
		t.Error("expected empty-state message")
	}
}
