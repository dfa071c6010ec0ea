// Package review is the last form screen: confirmed diagnoses with their
// care instructions, observations, rating and save.
package review

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/router"
	"github.com/abhisek/nandadx/internal/screen"
	"github.com/abhisek/nandadx/internal/screens"
	"github.com/abhisek/nandadx/internal/session"
	"github.com/abhisek/nandadx/internal/ui/components"
	"github.com/abhisek/nandadx/internal/ui/layout"
	"github.com/abhisek/nandadx/internal/ui/theme"
)

type focus int

const (
	focusObservations focus = iota
	focusRating
	focusSave
	focusCount
)

// ReviewScreen summarises the selection and saves the session.
type ReviewScreen struct {
	env          *screens.Env
	state        *session.State
	observations components.TextInput
	rating       components.Rating
	save         components.Button
	focus        focus
	menu         components.Menu
	errMsg       string
}

var _ screen.Screen = (*ReviewScreen)(nil)

type saveMsg struct{}

// New creates the review screen for state.
func New(env *screens.Env, state *session.State) *ReviewScreen {
	s := &ReviewScreen{
		env:          env,
		state:        state,
		observations: components.NewTextInput("Observações gerais sobre os diagnósticos selecionados", 500),
		rating:       components.NewRating(state.Rating, session.MaxRating),
	}
	s.observations.SetValue(state.Observations)
	s.save = components.NewButton("Salvar Avaliação", false, func() tea.Cmd {
		return func() tea.Msg { return saveMsg{} }
	})
	return s
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.setFocus(focusObservations)
}

func (s *ReviewScreen) Title() string {
	return "Revisão"
}

// Status implements screen.StatusProvider.
func (s *ReviewScreen) Status() string {
	return screens.Status(s.state)
}

// KeyHints implements screen.KeyHintProvider.
func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.saved() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navegar"},
			{Key: "Enter", Description: "Selecionar"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Campo"},
		{Key: "←→", Description: "Nota"},
		{Key: "Ctrl+S", Description: "Salvar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *ReviewScreen) saved() bool {
	return s.state.Phase == session.PhaseSaved
}

func (s *ReviewScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	s.save.Active = f == focusSave
	if f == focusObservations {
		return s.observations.Focus()
	}
	s.observations.Blur()
	return nil
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(saveMsg); ok {
		return s.submit()
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focus == focusObservations && !s.saved() {
			return s, s.forwardObservations(msg)
		}
		return s, nil
	}

	if s.saved() {
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		return s.submit()
	}

	switch s.focus {
	case focusObservations:
		if kmsg.String() == "enter" {
			return s, s.setFocus(focusRating)
		}
		return s, s.forwardObservations(msg)
	case focusRating:
		if kmsg.String() == "enter" {
			return s, s.setFocus(focusSave)
		}
		s.rating, _ = s.rating.Update(msg)
		s.state.SetRating(s.rating.Value)
		return s, nil
	default:
		var cmd tea.Cmd
		s.save, cmd = s.save.Update(msg)
		return s, cmd
	}
}

func (s *ReviewScreen) forwardObservations(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.observations, cmd = s.observations.Update(msg)
	s.state.Observations = s.observations.Value()
	return cmd
}

// submit records the session synchronously. Failures keep the form open
// for another attempt.
func (s *ReviewScreen) submit() (screen.Screen, tea.Cmd) {
	if s.saved() {
		return s, nil
	}
	if err := session.Submit(context.Background(), s.state, s.env.Recorder); err != nil {
		s.errMsg = "Ocorreu um erro ao salvar os dados: " + err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.observations.Blur()
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Nova avaliação", Action: s.restart, Disabled: s.env.Restart == nil},
		{Label: "Sair", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s, nil
}

func (s *ReviewScreen) restart() tea.Cmd {
	next := s.env.Restart()
	return func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

// renderSelections lists each confirmed diagnosis with its care instructions.
func (s *ReviewScreen) renderSelections(width int) string {
	entries := s.state.Selections()
	if len(entries) == 0 {
		return theme.Hint.Render("Nenhum diagnóstico selecionado.")
	}
	wrap := lipgloss.NewStyle().Width(max(width-6, 20))

	var b strings.Builder
	b.WriteString(theme.Label.Render("Diagnósticos Selecionados:"))
	for _, e := range entries {
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(theme.Body.Render(diagnosis.SelectionMessage(e.Diagnosis, e.Symptoms))))
		var items []string
		if s.env.Care != nil {
			items = s.env.Care.Instructions(e.Diagnosis)
		}
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n    " + theme.Subtitle.Bold(true).Render("Cuidados Relacionados:"))
		for _, item := range items {
			b.WriteString("\n" + wrap.Render("        • "+item))
		}
	}
	return b.String()
}

func (s *ReviewScreen) View(width, height int) string {
	label := func(text string, f focus) string {
		if s.focus == f && !s.saved() {
			return theme.Selected.Render(text)
		}
		return theme.Label.Render(text)
	}

	controls := []string{
		"",
		label("Observações: ", focusObservations) + s.observations.View(),
		label("Avalie a aplicação (de 1 a 5): ", focusRating) + s.rating.View(s.focus == focusRating),
		"",
	}
	switch {
	case s.saved():
		controls = append(controls, theme.Checked.Render("Avaliação salva com sucesso."), "", s.menu.View())
	default:
		controls = append(controls, s.save.View())
		if s.errMsg != "" {
			controls = append(controls, "", theme.Failure.Render(s.errMsg))
		}
	}
	bottom := strings.Join(controls, "\n")

	top := screens.ClampLines(s.renderSelections(width), height-lipgloss.Height(bottom))
	return lipgloss.NewStyle().Padding(0, 2).Render(top + "\n" + bottom)
}
