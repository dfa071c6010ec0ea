package diagnosis

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName turns an identifier such as "Risco_de_Infeccao" into
// "Risco de Infeccao".
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// DisplaySymptom formats a symptom column name for the suggestion list:
// separators become spaces and the text is lower-cased.
func DisplaySymptom(symptom string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(symptom)
	return cases.Lower(language.BrazilianPortuguese).String(s)
}

// JoinSymptoms formats each symptom with DisplayName and joins them with ", ".
func JoinSymptoms(symptoms []string) string {
	formatted := make([]string, len(symptoms))
	for i, s := range symptoms {
		formatted[i] = DisplayName(s)
	}
	return strings.Join(formatted, ", ")
}
