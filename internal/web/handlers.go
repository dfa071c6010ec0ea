package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/selection"
	"github.com/abhisek/nandadx/internal/session"
)

type symptomResponse struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

type suggestionsRequest struct {
	Symptoms  []string `json:"symptoms"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type suggestionResponse struct {
	Diagnosis   string  `json:"diagnosis"`
	Symptom     string  `json:"symptom"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

type careResponse struct {
	Diagnosis    string   `json:"diagnosis"`
	Instructions []string `json:"instructions"`
}

type evaluationRequest struct {
	Initials       string            `json:"initials"`
	Selections     []selection.Entry `json:"selections"`
	Custom         string            `json:"custom"`
	Symptoms       []string          `json:"symptoms"`
	Observations   string            `json:"observations"`
	Rating         int               `json:"rating"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
}

type evaluationResponse struct {
	SessionID string `json:"session_id"`
	Rows      int    `json:"rows"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response: %v", err)
	}
}

func (s *Server) handleSymptoms(w http.ResponseWriter, r *http.Request) {
	names := s.engine.Attributes().Names()
	out := make([]symptomResponse, len(names))
	for i, n := range names {
		out[i] = symptomResponse{Name: n, Display: diagnosis.DisplayName(n)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDiagnoses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Labels().Names())
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	threshold := s.threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold >= 1 {
		http.Error(w, "threshold must be in [0, 1)", http.StatusBadRequest)
		return
	}

	entries, err := s.engine.Suggest(req.Symptoms, threshold)
	if err != nil {
		http.Error(w, "Suggestion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]suggestionResponse, len(entries))
	for i, e := range entries {
		out[i] = suggestionResponse{
			Diagnosis:   e.Diagnosis,
			Symptom:     e.Symptom,
			Probability: e.Probability,
			Message:     e.Message(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCare(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "diagnosis"))
	if err != nil {
		http.Error(w, "Invalid diagnosis", http.StatusBadRequest)
		return
	}
	items := s.care.Instructions(name)
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, careResponse{Diagnosis: name, Instructions: items})
}

func (s *Server) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Rating < session.MinRating || req.Rating > session.MaxRating {
		http.Error(w, fmt.Sprintf("rating must be between %d and %d", session.MinRating, session.MaxRating),
			http.StatusBadRequest)
		return
	}

	// Repeated pairs collapse and the custom entry goes last.
	var set selection.Set
	for _, e := range req.Selections {
		for _, sym := range e.Symptoms {
			set.Add(e.Diagnosis, sym)
		}
	}
	set.SetCustom(req.Custom)

	rec := recorder.SessionRecord{
		SessionID:      uuid.NewString(),
		Initials:       req.Initials,
		Selections:     set.Entries(),
		Symptoms:       req.Symptoms,
		Observations:   req.Observations,
		Rating:         req.Rating,
		ElapsedSeconds: req.ElapsedSeconds,
	}

	s.mu.Lock()
	err := s.recorder.Record(r.Context(), rec)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, "Ocorreu um erro ao salvar os dados: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, evaluationResponse{
		SessionID: rec.SessionID,
		Rows:      len(rec.Selections),
	})
}
