// Package web serves the evaluation form over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/nandadx/internal/care"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/session"
	"github.com/abhisek/nandadx/internal/suggest"
)

// Options holds the loaded artifacts the server answers from.
type Options struct {
	Engine    *suggest.Engine
	Care      *care.Table
	Recorder  session.Recorder
	Threshold float64
}

// Server is the HTTP form. Artifacts are read-only; Record calls are
// serialised so rows of concurrent submissions never interleave.
type Server struct {
	engine    *suggest.Engine
	care      *care.Table
	recorder  session.Recorder
	threshold float64

	mu sync.Mutex
}

// New creates a server. A nil care table serves no instructions.
func New(opts Options) *Server {
	c := opts.Care
	if c == nil {
		c = care.Empty()
	}
	return &Server{
		engine:    opts.Engine,
		care:      c,
		recorder:  opts.Recorder,
		threshold: opts.Threshold,
	}
}

// Routes returns the chi router with every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleForm)
	r.Route("/api", func(r chi.Router) {
		r.Get("/symptoms", s.handleSymptoms)
		r.Get("/diagnoses", s.handleDiagnoses)
		r.Post("/suggestions", s.handleSuggestions)
		r.Get("/care/{diagnosis}", s.handleCare)
		r.Post("/evaluations", s.handleEvaluation)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving form on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
