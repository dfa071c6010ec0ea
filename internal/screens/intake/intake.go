// Package intake is the first form screen: the user's initials and the
// observed symptoms.
package intake

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/router"
	"github.com/abhisek/nandadx/internal/screen"
	"github.com/abhisek/nandadx/internal/screens"
	"github.com/abhisek/nandadx/internal/screens/suggestions"
	"github.com/abhisek/nandadx/internal/session"
	"github.com/abhisek/nandadx/internal/ui/components"
	"github.com/abhisek/nandadx/internal/ui/layout"
	"github.com/abhisek/nandadx/internal/ui/theme"
)

type focus int

const (
	focusInitials focus = iota
	focusFilter
	focusList
	focusCount
)

// IntakeScreen collects initials and the symptom selection.
type IntakeScreen struct {
	env      *screens.Env
	state    *session.State
	initials components.TextInput
	filter   components.TextInput
	list     components.Checklist
	visible  []int // indices into env.Symptoms shown in list
	focus    focus
	errMsg   string
}

var _ screen.Screen = (*IntakeScreen)(nil)

// New creates the intake screen for state.
func New(env *screens.Env, state *session.State) *IntakeScreen {
	s := &IntakeScreen{
		env:      env,
		state:    state,
		initials: components.NewTextInput("Ex.: MCS", 10),
		filter:   components.NewTextInput("digite para filtrar", 60),
	}
	s.initials.SetValue(state.Initials)
	s.refilter()
	return s
}

func (s *IntakeScreen) Init() tea.Cmd {
	return s.setFocus(focusInitials)
}

func (s *IntakeScreen) Title() string {
	return "Sintomas"
}

// Status implements screen.StatusProvider.
func (s *IntakeScreen) Status() string {
	return screens.Status(s.state)
}

// KeyHints implements screen.KeyHintProvider.
func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Campo"},
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Espaço", Description: "Marcar"},
		{Key: "Enter", Description: "Sugerir"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

func (s *IntakeScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	s.initials.Blur()
	s.filter.Blur()
	switch f {
	case focusInitials:
		return s.initials.Focus()
	case focusFilter:
		return s.filter.Focus()
	}
	return nil
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.forward(msg)
	}

	switch kmsg.String() {
	case "tab":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab":
		return s, s.setFocus((s.focus + focusCount - 1) % focusCount)
	case "enter":
		return s.proceed()
	}

	if s.focus == focusList {
		switch kmsg.String() {
		case "space", " ", "x":
			s.toggleCursor()
			return s, nil
		}
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return s, cmd
	}
	return s, s.forward(msg)
}

// forward sends msg to the focused text input and syncs state.
func (s *IntakeScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case focusInitials:
		s.initials, cmd = s.initials.Update(msg)
		s.state.Initials = s.initials.Value()
	case focusFilter:
		before := s.filter.Value()
		s.filter, cmd = s.filter.Update(msg)
		if s.filter.Value() != before {
			s.refilter()
		}
	}
	return cmd
}

func (s *IntakeScreen) toggleCursor() {
	if s.list.Cursor < 0 || s.list.Cursor >= len(s.visible) {
		return
	}
	s.state.ToggleSymptom(s.env.Symptoms[s.visible[s.list.Cursor]])
	s.errMsg = ""
}

// refilter rebuilds the visible list from the filter text. Matching ignores
// case and separators.
func (s *IntakeScreen) refilter() {
	query := diagnosis.DisplaySymptom(strings.TrimSpace(s.filter.Value()))
	s.visible = s.visible[:0]
	labels := make([]string, 0, len(s.env.Symptoms))
	for i, sym := range s.env.Symptoms {
		if query != "" && !strings.Contains(diagnosis.DisplaySymptom(sym), query) {
			continue
		}
		s.visible = append(s.visible, i)
		labels = append(labels, diagnosis.DisplayName(sym))
	}
	s.list.SetItems(labels)
}

func (s *IntakeScreen) proceed() (screen.Screen, tea.Cmd) {
	if len(s.state.Symptoms) == 0 {
		s.errMsg = "Selecione ao menos um sintoma."
		return s, nil
	}
	if err := s.state.ComputeSuggestions(s.env.Engine, s.env.Threshold); err != nil {
		s.errMsg = "Erro ao calcular sugestões: " + err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.state.Phase = session.PhaseSuggestions
	next := suggestions.New(s.env, s.state)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *IntakeScreen) View(width, height int) string {
	label := func(text string, f focus) string {
		if s.focus == f {
			return theme.Selected.Render(text)
		}
		return theme.Label.Render(text)
	}

	var sections []string
	sections = append(sections,
		label("Iniciais do Usuário: ", focusInitials)+s.initials.View(),
		label("Filtrar sintomas:    ", focusFilter)+s.filter.View(),
		"",
	)

	selected := "nenhum"
	if len(s.state.Symptoms) > 0 {
		selected = diagnosis.JoinSymptoms(s.state.Symptoms)
	}
	sections = append(sections,
		lipgloss.NewStyle().Width(max(width-4, 10)).Render(
			theme.Hint.Render("Selecionados: ")+theme.Body.Render(selected)),
		"",
		label("Selecione os sintomas:", focusList),
	)

	footer := ""
	if s.errMsg != "" {
		footer = theme.Failure.Render(s.errMsg)
	}

	head := strings.Join(sections, "\n")
	listHeight := height - lipgloss.Height(head) - 2
	if footer != "" {
		listHeight--
	}
	list := s.list.View(max(listHeight, 1), s.focus == focusList, func(i int) bool {
		return s.state.HasSymptom(s.env.Symptoms[s.visible[i]])
	})

	content := head + "\n" + list
	if footer != "" {
		content += "\n\n" + footer
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(screens.ClampLines(content, height))
}
