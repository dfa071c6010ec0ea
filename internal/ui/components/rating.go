package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/nandadx/internal/ui/theme"
)

// Rating is a 1..Max star picker.
type Rating struct {
	Value int
	Max   int
}

// NewRating creates a picker starting at value.
func NewRating(value, maxValue int) Rating {
	r := Rating{Max: maxValue}
	r.Set(value)
	return r
}

// Set stores v clamped to 1..Max.
func (r *Rating) Set(v int) {
	r.Value = min(max(v, 1), r.Max)
}

// Update handles arrows and digit keys.
func (r Rating) Update(msg tea.Msg) (Rating, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	key := kmsg.String()
	switch key {
	case "left", "h", "-":
		r.Set(r.Value - 1)
	case "right", "l", "+":
		r.Set(r.Value + 1)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= r.Max {
			r.Value = n
		}
	}
	return r, nil
}

// View renders filled and empty stars followed by the numeric value.
func (r Rating) View(focused bool) string {
	stars := strings.Repeat("★", r.Value) + strings.Repeat("☆", r.Max-r.Value)
	style := theme.Warning
	if focused {
		style = theme.Selected
	}
	return style.Render(stars) + theme.Hint.Render("  "+strconv.Itoa(r.Value)+"/"+strconv.Itoa(r.Max))
}
