package diagnosis

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"Risco_de_Infeccao", KindRisk},
		{"Risco de Queda", KindRisk},
		{"Dor_Aguda", KindProblem},
		{"risco_minusculo", KindProblem},
		{"", KindProblem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.name); got != tt.want {
				t.Errorf("KindOf(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEvidenceLabel(t *testing.T) {
	if got := KindRisk.EvidenceLabel(false); got != "Fator Relacionado" {
		t.Errorf("risk singular = %q", got)
	}
	if got := KindRisk.EvidenceLabel(true); got != "Fatores Relacionados" {
		t.Errorf("risk plural = %q", got)
	}
	if got := KindProblem.EvidenceLabel(false); got != "Característica Definidora" {
		t.Errorf("problem singular = %q", got)
	}
	if got := KindProblem.EvidenceLabel(true); got != "Características Definidoras" {
		t.Errorf("problem plural = %q", got)
	}
}

func TestSuggestionMessage(t *testing.T) {
	got := SuggestionMessage("Risco_de_Infeccao", "Febre_Alta")
	want := "Diagnóstico: Risco de Infeccao. Fator Relacionado: febre alta"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = SuggestionMessage("Dor_Aguda", "Expressao-Facial")
	want = "Diagnóstico: Dor Aguda. Característica Definidora: expressao facial"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSelectionMessage(t *testing.T) {
	got := SelectionMessage("Dor_Aguda", []string{"Expressao_Facial", "Relato_Verbal"})
	want := "Diagnóstico: Dor Aguda. Características Definidoras: Expressao Facial, Relato Verbal"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
