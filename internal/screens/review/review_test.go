package review

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nandadx/internal/care"
	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/router"
	"github.com/abhisek/nandadx/internal/screen"
	"github.com/abhisek/nandadx/internal/screens"
	"github.com/abhisek/nandadx/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }

func testScreen(t *testing.T) (*ReviewScreen, *session.State, *recorder.MemorySink) {
	t.Helper()
	tbl, err := care.Read(strings.NewReader("Risco_de_Queda\n\"Manter grades elevadas\tAuxiliar deambulação\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	sink := &recorder.MemorySink{}
	env := &screens.Env{
		Care:     tbl,
		Recorder: recorder.New(sink),
		Restart:  func() screen.Screen { return stubScreen{} },
	}
	state := session.NewState()
	state.Initials = "AB"
	state.Selection.Toggle("Risco_de_Queda", "Tontura")
	s := New(env, state)
	s.Init()
	return s, state, sink
}

func TestReview_ShowsSelectionAndCare(t *testing.T) {
	s, _, _ := testScreen(t)
	view := s.View(120, 40)
	for _, want := range []string{
		"Diagnóstico: Risco de Queda. Fatores Relacionados: Tontura",
		"Cuidados Relacionados:",
		"• Manter grades elevadas",
		"• Auxiliar deambulação",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReview_ObservationsAndRating(t *testing.T) {
	s, state, _ := testScreen(t)
	for _, r := range "ok" {
		s.Update(keyPress(r))
	}
	if state.Observations != "ok" {
		t.Errorf("Observations = %q", state.Observations)
	}

	s.Update(specialKey(tea.KeyEnter)) // to rating
	s.Update(keyPress('4'))
	if state.Rating != 4 {
		t.Errorf("Rating = %d, want 4", state.Rating)
	}
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyRight))
	if state.Rating != 5 {
		t.Errorf("Rating = %d, want 5 (clamped)", state.Rating)
	}
}

func TestReview_SaveButton(t *testing.T) {
	s, state, sink := testScreen(t)
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if !s.save.Active {
		t.Fatal("save button should be focused")
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	s.Update(cmd())

	if state.Phase != session.PhaseSaved {
		t.Fatalf("Phase = %v, want saved", state.Phase)
	}
	rows := sink.Rows()
	if len(rows) != 1 || rows[0].Diagnosis != "Risco_de_Queda" || rows[0].Initials != "AB" {
		t.Errorf("rows = %+v", rows)
	}
	if !strings.Contains(s.View(120, 40), "Avaliação salva com sucesso.") {
		t.Error("expected success message")
	}
}

func TestReview_SaveFailureKeepsForm(t *testing.T) {
	s, state, sink := testScreen(t)
	sink.Err = errors.New("permission denied")

	s.Update(ctrlKey('s'))
	if state.Phase == session.PhaseSaved {
		t.Fatal("failed save must not mark session saved")
	}
	if !strings.Contains(s.View(120, 40), "Ocorreu um erro ao salvar os dados") {
		t.Error("expected error message in view")
	}

	sink.Err = nil
	s.Update(ctrlKey('s'))
	if state.Phase != session.PhaseSaved {
		t.Error("retry should save")
	}
}

func TestReview_NewSessionAfterSave(t *testing.T) {
	s, _, sink := testScreen(t)
	s.Update(ctrlKey('s'))
	s.Update(ctrlKey('s'))
	if n := len(sink.Rows()); n != 1 {
		t.Errorf("saved %d rows, want 1 (no double save)", n)
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected restart command")
	}
	if _, ok := cmd().(router.ResetScreenMsg); !ok {
		t.Errorf("msg = %T, want ResetScreenMsg", cmd())
	}
}
