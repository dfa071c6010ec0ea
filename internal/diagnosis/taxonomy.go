package diagnosis

import (
	"fmt"
	"strings"
)

// RiskPrefix marks risk-type diagnosis names.
const RiskPrefix = "Risco"

// KindOf classifies a diagnosis by its name.
func KindOf(name string) Kind {
	if strings.HasPrefix(name, RiskPrefix) {
		return KindRisk
	}
	return KindProblem
}

// EvidenceLabel returns the heading used for the symptoms cited as evidence
// for a diagnosis of this kind.
func (k Kind) EvidenceLabel(plural bool) string {
	switch {
	case k == KindRisk && plural:
		return "Fatores Relacionados"
	case k == KindRisk:
		return "Fator Relacionado"
	case plural:
		return "Características Definidoras"
	default:
		return "Característica Definidora"
	}
}

// SuggestionMessage renders a single suggestion the way the form lists it
// before the user confirms it.
func SuggestionMessage(name, symptom string) string {
	return fmt.Sprintf("Diagnóstico: %s. %s: %s",
		DisplayName(name), KindOf(name).EvidenceLabel(false), DisplaySymptom(symptom))
}

// SelectionMessage renders a confirmed diagnosis with all of its symptoms.
func SelectionMessage(name string, symptoms []string) string {
	return fmt.Sprintf("Diagnóstico: %s. %s: %s",
		DisplayName(name), KindOf(name).EvidenceLabel(true), JoinSymptoms(symptoms))
}
