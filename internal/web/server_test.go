package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/nandadx/internal/care"
	"github.com/abhisek/nandadx/internal/classifier"
	"github.com/abhisek/nandadx/internal/dataset"
	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/suggest"
)

func newTestServer(t *testing.T) (*httptest.Server, *recorder.MemorySink) {
	t.Helper()
	clf, err := classifier.NewLookup([][]float64{{0.05, 0.6}, {0.3, 0.05}}, nil)
	require.NoError(t, err)
	engine := suggest.NewEngine(
		dataset.NewAttributes([]string{"Febre_alta", "Tosse"}), clf,
		diagnosis.NewLabels([]string{"Padrao_respiratorio_ineficaz", "Risco_de_Infeccao"}))

	tbl, err := care.Read(strings.NewReader("Risco_de_Infeccao\n\"Lavar as mãos\tMonitorar temperatura\"\n"))
	require.NoError(t, err)

	sink := &recorder.MemorySink{}
	srv := New(Options{
		Engine:    engine,
		Care:      tbl,
		Recorder:  recorder.New(sink),
		Threshold: suggest.DefaultThreshold,
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, sink
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestForm(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `value="Febre_alta"`)
	assert.Contains(t, string(body), "Febre alta")
	// Symptoms are sent in the order they were ticked.
	assert.Contains(t, string(body), "picked.push(box.value)")
	assert.Contains(t, string(body), "chosen = [...picked]")
}

func TestSymptomsAndDiagnoses(t *testing.T) {
	ts, _ := newTestServer(t)

	var symptoms []symptomResponse
	require.NoError(t, json.NewDecoder(get(t, ts.URL+"/api/symptoms").Body).Decode(&symptoms))
	assert.Equal(t, []symptomResponse{
		{Name: "Febre_alta", Display: "Febre alta"},
		{Name: "Tosse", Display: "Tosse"},
	}, symptoms)

	var labels []string
	require.NoError(t, json.NewDecoder(get(t, ts.URL+"/api/diagnoses").Body).Decode(&labels))
	assert.Equal(t, []string{"Padrao_respiratorio_ineficaz", "Risco_de_Infeccao"}, labels)
}

func TestSuggestions(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL+"/api/suggestions", `{"symptoms":["Febre_alta","Tosse"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []suggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Risco_de_Infeccao", out[0].Diagnosis)
	assert.Equal(t, "Febre_alta", out[0].Symptom)
	assert.Equal(t, "Diagnóstico: Risco de Infeccao. Fator Relacionado: febre alta", out[0].Message)
	assert.Equal(t, "Padrao_respiratorio_ineficaz", out[1].Diagnosis)
}

func TestSuggestions_FollowRequestOrder(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL+"/api/suggestions", `{"symptoms":["Tosse","Febre_alta"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []suggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Tosse", out[0].Symptom)
	assert.Equal(t, "Febre_alta", out[1].Symptom)
}

func TestSuggestions_Threshold(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := post(t, ts.URL+"/api/suggestions", `{"symptoms":["Febre_alta","Tosse"],"threshold":0.5}`)
	var out []suggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Risco_de_Infeccao", out[0].Diagnosis)

	resp = post(t, ts.URL+"/api/suggestions", `{"symptoms":[],"threshold":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/suggestions", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSuggestions_Empty(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := post(t, ts.URL+"/api/suggestions", `{"symptoms":[]}`)
	var out []suggestionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCare(t *testing.T) {
	ts, _ := newTestServer(t)

	var out careResponse
	require.NoError(t, json.NewDecoder(get(t, ts.URL+"/api/care/Risco_de_Infeccao").Body).Decode(&out))
	assert.Equal(t, []string{"Lavar as mãos", "Monitorar temperatura"}, out.Instructions)

	out = careResponse{}
	require.NoError(t, json.NewDecoder(get(t, ts.URL+"/api/care/Desconhecido").Body).Decode(&out))
	assert.Equal(t, "Desconhecido", out.Diagnosis)
	assert.NotNil(t, out.Instructions)
	assert.Empty(t, out.Instructions)
}

func TestEvaluation(t *testing.T) {
	ts, sink := newTestServer(t)

	resp := post(t, ts.URL+"/api/evaluations", `{
		"initials": "AB",
		"selections": [{"diagnosis": "Risco_de_Infeccao", "symptoms": ["Febre_alta", "Febre_alta"]}],
		"custom": "Dor aguda",
		"symptoms": ["Febre_alta"],
		"observations": "ok",
		"rating": 4,
		"elapsed_seconds": 12.3456
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out evaluationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, 2, out.Rows)

	rows := sink.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, out.SessionID, rows[0].SessionID)
	assert.Equal(t, "Febre alta", rows[0].Symptoms)
	assert.Equal(t, diagnosis.CustomKey, rows[1].Diagnosis)
	assert.Equal(t, "Dor aguda", rows[1].Symptoms)
	assert.Equal(t, 12.35, rows[0].ElapsedSeconds)
	assert.Equal(t, 4, rows[0].Rating)
}

func TestEvaluation_RatingOutOfRange(t *testing.T) {
	ts, sink := newTestServer(t)
	for _, body := range []string{`{"rating": 0}`, `{"rating": 6}`} {
		resp := post(t, ts.URL+"/api/evaluations", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Empty(t, sink.Rows())
}

func TestEvaluation_RecordFailure(t *testing.T) {
	ts, sink := newTestServer(t)
	sink.Err = errors.New("disk full")

	resp := post(t, ts.URL+"/api/evaluations",
		`{"selections":[{"diagnosis":"Risco_de_Infeccao","symptoms":["Febre_alta"]}],"rating":3}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Ocorreu um erro ao salvar os dados")
	assert.Contains(t, string(body), "disk full")
}
