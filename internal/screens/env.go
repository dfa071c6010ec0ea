// Package screens holds what the form screens share. Each screen lives in
// its own subpackage.
package screens

import (
	"strconv"
	"strings"

	"github.com/abhisek/nandadx/internal/care"
	"github.com/abhisek/nandadx/internal/screen"
	"github.com/abhisek/nandadx/internal/session"
)

// Env carries the loaded artifacts every screen of the form needs.
type Env struct {
	Engine    session.Suggester
	Symptoms  []string // in feature order
	Care      *care.Table
	Recorder  session.Recorder
	Threshold float64

	// Restart builds the first screen of a fresh session.
	Restart func() screen.Screen
}

// Status summarises a session for the header.
func Status(s *session.State) string {
	if s == nil {
		return ""
	}
	return pluralize(len(s.Symptoms), "sintoma", "sintomas") + " · " +
		pluralize(s.Selection.Len(), "diagnóstico", "diagnósticos")
}

func pluralize(n int, one, many string) string {
	word := many
	if n == 1 {
		word = one
	}
	return strconv.Itoa(n) + " " + word
}

// ClampLines keeps at most n lines of s, marking the cut.
func ClampLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	lines = lines[:n]
	lines[n-1] = "…"
	return strings.Join(lines, "\n")
}
