package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestChecklist_Navigation(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	c, _ = c.Update(specialKey(tea.KeyDown))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))
	if c.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", c.Cursor)
	}
	c, _ = c.Update(specialKey(tea.KeyUp))
	if c.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", c.Cursor)
	}
	c, _ = c.Update(keyPress('g'))
	if c.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", c.Cursor)
	}
}

func TestChecklist_ViewScrollsToCursor(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c", "d", "e"})
	c.Cursor = 4
	view := c.View(2, true, func(i int) bool { return i == 3 })
	lines := strings.Split(view, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "d") || !strings.Contains(lines[0], "[x]") {
		t.Errorf("first visible line = %q, want checked d", lines[0])
	}
	if !strings.Contains(lines[1], "▸") {
		t.Errorf("cursor line = %q", lines[1])
	}
}

func TestChecklist_SetItemsClampsCursor(t *testing.T) {
	c := NewChecklist([]string{"a", "b", "c"})
	c.Cursor = 2
	c.SetItems([]string{"a"})
	if c.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", c.Cursor)
	}
	c.SetItems(nil)
	if !strings.Contains(c.View(3, true, nil), "nenhum") {
		t.Error("empty checklist should say so")
	}
}

func TestRating(t *testing.T) {
	r := NewRating(0, 5)
	if r.Value != 1 {
		t.Errorf("Value = %d, want clamp to 1", r.Value)
	}
	r, _ = r.Update(specialKey(tea.KeyRight))
	if r.Value != 2 {
		t.Errorf("Value = %d, want 2", r.Value)
	}
	r, _ = r.Update(keyPress('5'))
	r, _ = r.Update(specialKey(tea.KeyRight))
	if r.Value != 5 {
		t.Errorf("Value = %d, want 5", r.Value)
	}
	r, _ = r.Update(keyPress('9'))
	if r.Value != 5 {
		t.Errorf("out-of-range digit changed value to %d", r.Value)
	}
	if !strings.Contains(r.View(false), "5/5") {
		t.Errorf("view = %q", r.View(false))
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { ran = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { ran = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m.Update(specialKey(tea.KeyEnter))
	if ran != "two" {
		t.Errorf("ran = %q, want two", ran)
	}
}

func TestButton_OnlyWhenActive(t *testing.T) {
	pressed := 0
	b := NewButton("Salvar", false, func() tea.Cmd { pressed++; return nil })
	b.Update(specialKey(tea.KeyEnter))
	b.Active = true
	b.Update(specialKey(tea.KeyEnter))
	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
}

func TestProgressBar_Percent(t *testing.T) {
	view := NewProgressBar("", 0.6, true, 20).View()
	if !strings.Contains(view, "60%") {
		t.Errorf("view = %q, want 60%%", view)
	}
}
