package suggest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nandadx/internal/classifier"
	"github.com/abhisek/nandadx/internal/dataset"
	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/logger"
)

func exampleEngine(t *testing.T) *Engine {
	t.Helper()
	clf, err := classifier.NewLookup([][]float64{
		{0.05, 0.6}, // fever
		{0.3, 0.05}, // cough
	}, nil)
	require.NoError(t, err)
	return NewEngine(
		dataset.NewAttributes([]string{"fever", "cough"}),
		clf,
		diagnosis.NewLabels([]string{"Risco_de_Infeccao", "Impaired_Gas_Exchange", "Risco_de_Infeccao"}),
	)
}

func TestSuggest_Example(t *testing.T) {
	e := exampleEngine(t)
	got, err := e.Suggest([]string{"fever", "cough"}, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Diagnosis: "Risco_de_Infeccao", Symptom: "fever", Probability: 0.6},
		{Diagnosis: "Impaired_Gas_Exchange", Symptom: "cough", Probability: 0.3},
	}, got)
}

func TestSuggest_Empty(t *testing.T) {
	e := exampleEngine(t)
	got, err := e.Suggest(nil, DefaultThreshold)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_StrictlyAboveThreshold(t *testing.T) {
	e := exampleEngine(t)
	got, err := e.Suggest([]string{"cough"}, 0.3)
	require.NoError(t, err)
	assert.Empty(t, got, "probability equal to threshold must not trigger")

	for _, th := range []float64{0, 0.04, 0.1, 0.3, 0.59, 0.6, 1} {
		got, err := e.Suggest([]string{"fever", "cough"}, th)
		require.NoError(t, err)
		for _, entry := range got {
			assert.Greater(t, entry.Probability, th)
		}
	}
}

func TestSuggest_MonotoneInThreshold(t *testing.T) {
	e := exampleEngine(t)
	prev := -1
	for _, th := range []float64{1, 0.6, 0.3, 0.1, 0.05, 0} {
		got, err := e.Suggest([]string{"fever", "cough"}, th)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(got), prev, "lowering threshold to %v shrank result", th)
		prev = len(got)
	}
}

func TestSuggest_OnlyTriggeringSymptom(t *testing.T) {
	e := exampleEngine(t)
	got, err := e.Suggest([]string{"cough", "fever"}, DefaultThreshold)
	require.NoError(t, err)

	var infection []Entry
	for _, entry := range got {
		if entry.Diagnosis == "Risco_de_Infeccao" {
			infection = append(infection, entry)
		}
	}
	require.Len(t, infection, 1)
	assert.Equal(t, "fever", infection[0].Symptom)
	assert.Equal(t, "cough", got[0].Symptom, "entries follow selection order")
}

func TestSuggest_DuplicatesKept(t *testing.T) {
	e := exampleEngine(t)
	got, err := e.Suggest([]string{"fever", "fever"}, DefaultThreshold)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSuggest_UnknownSymptomScoresZeroVector(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Output()
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(prev)
	})

	clf, err := classifier.NewLookup([][]float64{{0.05, 0.6}, {0.3, 0.05}}, []float64{0.2, 0.8})
	require.NoError(t, err)
	e := NewEngine(dataset.NewAttributes([]string{"fever", "cough"}), clf,
		diagnosis.NewLabels([]string{"A", "B"}))

	got, err := e.Suggest([]string{"rash"}, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Diagnosis: "A", Symptom: "rash", Probability: 0.2},
		{Diagnosis: "B", Symptom: "rash", Probability: 0.8},
	}, got)
	assert.Contains(t, buf.String(), `[WARN] symptom "rash"`)
}

type failing struct{}

func (failing) PredictProba([]float32) ([]float64, error) { return nil, errors.New("runtime down") }
func (failing) Classes() int                             { return 0 }

func TestSuggest_ClassifierError(t *testing.T) {
	e := NewEngine(dataset.NewAttributes([]string{"fever"}), failing{}, diagnosis.NewLabels([]string{"A"}))
	_, err := e.Suggest([]string{"fever"}, DefaultThreshold)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime down")
}

func TestEntry_Message(t *testing.T) {
	e := Entry{Diagnosis: "Risco_de_Infeccao", Symptom: "Febre_Alta"}
	assert.Equal(t, "Diagnóstico: Risco de Infeccao. Fator Relacionado: febre alta", e.Message())
}
