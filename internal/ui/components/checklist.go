package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nandadx/internal/ui/theme"
)

// Checklist is a scrolling list with a cursor. It does not own the checked
// state; the screen supplies it when rendering.
type Checklist struct {
	Items  []string
	Cursor int
	offset int
}

// NewChecklist creates a checklist over items.
func NewChecklist(items []string) Checklist {
	return Checklist{Items: items}
}

// SetItems replaces the items, keeping the cursor in range.
func (c *Checklist) SetItems(items []string) {
	c.Items = items
	if c.Cursor >= len(items) {
		c.Cursor = max(len(items)-1, 0)
	}
	c.offset = 0
}

// Update handles cursor movement.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "pgup":
		c.Cursor = max(c.Cursor-10, 0)
	case "pgdown":
		c.Cursor = min(c.Cursor+10, len(c.Items)-1)
	case "home", "g":
		c.Cursor = 0
	case "end", "G":
		c.Cursor = len(c.Items) - 1
	}
	return c, nil
}

// View renders at most height rows around the cursor. checked reports
// whether item i is checked; focused dims the cursor when false.
func (c *Checklist) View(height int, focused bool, checked func(int) bool) string {
	if len(c.Items) == 0 {
		return theme.Hint.Render("  (nenhum item)")
	}
	if height < 1 {
		height = 1
	}
	if c.Cursor < c.offset {
		c.offset = c.Cursor
	}
	if c.Cursor >= c.offset+height {
		c.offset = c.Cursor - height + 1
	}
	end := min(c.offset+height, len(c.Items))

	var b strings.Builder
	for i := c.offset; i < end; i++ {
		box := "[ ] "
		if checked != nil && checked(i) {
			box = theme.Checked.Render("[x]") + " "
		}
		prefix := "  "
		label := theme.Unselected.Render(c.Items[i])
		if i == c.Cursor {
			prefix = "▸ "
			if focused {
				label = theme.Selected.Render(c.Items[i])
			}
		}
		b.WriteString(prefix + box + label)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
