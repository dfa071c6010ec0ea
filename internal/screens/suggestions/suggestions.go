// Package suggestions lists the diagnoses suggested for the selected
// symptoms and lets the user confirm them.
package suggestions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/nandadx/internal/router"
	"github.com/abhisek/nandadx/internal/screen"
	"github.com/abhisek/nandadx/internal/screens"
	"github.com/abhisek/nandadx/internal/screens/review"
	"github.com/abhisek/nandadx/internal/session"
	"github.com/abhisek/nandadx/internal/ui/components"
	"github.com/abhisek/nandadx/internal/ui/layout"
	"github.com/abhisek/nandadx/internal/ui/theme"
)

// SuggestionsScreen shows one checkbox per (diagnosis, symptom) suggestion
// plus a free-text custom diagnosis.
type SuggestionsScreen struct {
	env         *screens.Env
	state       *session.State
	list        components.Checklist
	custom      components.TextInput
	focusCustom bool
}

var _ screen.Screen = (*SuggestionsScreen)(nil)

// New creates the screen from state.Suggestions.
func New(env *screens.Env, state *session.State) *SuggestionsScreen {
	items := make([]string, len(state.Suggestions))
	for i, e := range state.Suggestions {
		items[i] = e.Message()
	}
	s := &SuggestionsScreen{
		env:    env,
		state:  state,
		list:   components.NewChecklist(items),
		custom: components.NewTextInput("Se desejar, escreva um diagnóstico personalizado", 200),
	}
	s.custom.SetValue(state.Selection.Custom())
	return s
}

func (s *SuggestionsScreen) Init() tea.Cmd {
	return nil
}

func (s *SuggestionsScreen) Title() string {
	return "Diagnósticos sugeridos"
}

// Status implements screen.StatusProvider.
func (s *SuggestionsScreen) Status() string {
	return screens.Status(s.state)
}

// KeyHints implements screen.KeyHintProvider.
func (s *SuggestionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Personalizado"},
		{Key: "Espaço", Description: "Confirmar"},
		{Key: "Enter", Description: "Revisar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *SuggestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.focusCustom {
			return s, s.forward(msg)
		}
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "shift+tab":
		s.focusCustom = !s.focusCustom
		if s.focusCustom {
			return s, s.custom.Focus()
		}
		s.custom.Blur()
		return s, nil
	case "enter":
		return s.proceed()
	}

	if s.focusCustom {
		return s, s.forward(msg)
	}
	switch kmsg.String() {
	case "space", " ", "x":
		if len(s.state.Suggestions) > 0 {
			s.state.ToggleSuggestion(s.list.Cursor)
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *SuggestionsScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.custom, cmd = s.custom.Update(msg)
	s.state.Selection.SetCustom(s.custom.Value())
	return cmd
}

func (s *SuggestionsScreen) proceed() (screen.Screen, tea.Cmd) {
	s.state.Phase = session.PhaseReview
	next := review.New(s.env, s.state)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SuggestionsScreen) View(width, height int) string {
	heading := theme.Label.Render("Diagnósticos sugeridos com base nos sintomas selecionados:")

	var detail string
	if n := len(s.state.Suggestions); n == 0 {
		detail = theme.Hint.Render(fmt.Sprintf(
			"Nenhum diagnóstico ultrapassou o limiar de %.2f.", s.env.Threshold))
	} else if c := s.list.Cursor; c >= 0 && c < n && !layout.IsCompactWidth(width) {
		e := s.state.Suggestions[c]
		detail = components.NewProgressBar("Probabilidade", e.Probability, true, min(width-8, 60)).View()
	}

	customLabel := theme.Label.Render("Diagnóstico personalizado: ")
	if s.focusCustom {
		customLabel = theme.Selected.Render("Diagnóstico personalizado: ")
	}
	bottom := strings.Join([]string{"", detail, "", customLabel + s.custom.View()}, "\n")

	listHeight := height - lipgloss.Height(heading) - lipgloss.Height(bottom) - 1
	list := s.list.View(max(listHeight, 1), !s.focusCustom, s.state.IsConfirmed)

	content := heading + "\n\n" + list + bottom
	return lipgloss.NewStyle().Padding(0, 2).Render(screens.ClampLines(content, height))
}
