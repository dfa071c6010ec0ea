package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle_FirstConfirmationOrder(t *testing.T) {
	s := New()
	assert.True(t, s.Toggle("Risco_de_Queda", "Tontura"))
	assert.True(t, s.Toggle("Dor_Aguda", "Expressao_de_dor"))
	assert.True(t, s.Toggle("Risco_de_Queda", "Fraqueza"))

	assert.Equal(t, []Entry{
		{Diagnosis: "Risco_de_Queda", Symptoms: []string{"Tontura", "Fraqueza"}},
		{Diagnosis: "Dor_Aguda", Symptoms: []string{"Expressao_de_dor"}},
	}, s.Entries())
}

func TestToggle_Withdraw(t *testing.T) {
	s := New()
	s.Toggle("A", "x")
	s.Toggle("B", "y")
	s.Toggle("A", "z")

	assert.False(t, s.Toggle("A", "x"))
	assert.False(t, s.Has("A", "x"))
	assert.True(t, s.Has("A", "z"))

	assert.False(t, s.Toggle("A", "z"))
	assert.Equal(t, []Entry{{Diagnosis: "B", Symptoms: []string{"y"}}}, s.Entries())

	// Re-confirming moves A behind B.
	s.Toggle("A", "x")
	assert.Equal(t, "A", s.Entries()[1].Diagnosis)
}

func TestCustomComesLast(t *testing.T) {
	s := New()
	s.SetCustom("Ansiedade relacionada a internação")
	s.Toggle("A", "x")
	assert.Equal(t, 2, s.Len())

	entries := s.Entries()
	assert.Equal(t, Entry{Diagnosis: "Personalizado", Symptoms: []string{"Ansiedade relacionada a internação"}}, entries[1])

	s.SetCustom("")
	assert.Equal(t, 1, s.Len())
}

func TestAddIsIdempotent(t *testing.T) {
	var s Set
	s.Add("A", "x")
	s.Add("A", "x")
	assert.Equal(t, []Entry{{Diagnosis: "A", Symptoms: []string{"x"}}}, s.Entries())
}

func TestEntriesAreCopies(t *testing.T) {
	s := New()
	s.Toggle("A", "x")
	e := s.Entries()
	e[0].Symptoms[0] = "mutated"
	assert.True(t, s.Has("A", "x"))
}

func TestClear(t *testing.T) {
	s := New()
	s.Toggle("A", "x")
	s.SetCustom("c")
	s.Clear()
	assert.Empty(t, s.Entries())
	assert.Equal(t, 0, s.Len())
}
