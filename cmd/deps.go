package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/nandadx/internal/care"
	"github.com/abhisek/nandadx/internal/classifier"
	"github.com/abhisek/nandadx/internal/config"
	"github.com/abhisek/nandadx/internal/dataset"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/recorder"
	"github.com/abhisek/nandadx/internal/store"
	"github.com/abhisek/nandadx/internal/suggest"
)

// deps holds the artifacts loaded once at startup.
type deps struct {
	cfg    config.Config
	engine *suggest.Engine
	care   *care.Table

	closers []io.Closer
}

// loadDeps reads the case table, model artifact and care table named by
// cfg. Any failure is fatal for the calling command.
func loadDeps(cfg config.Config) (*deps, error) {
	logger.Section("Loading artifacts")
	d := &deps{cfg: cfg}

	tbl, err := dataset.Load(cfg.Data.Attributes, cfg.Data.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("load case table: %w", err)
	}
	logger.Info("case table: %d symptoms, %d diagnoses, %d rows",
		tbl.Attributes.Len(), tbl.Labels.Len(), tbl.Rows)

	clf, manifest, err := classifier.Load(cfg.Data.Model, classifier.Options{
		ONNX: classifier.ONNXOptions{
			Library:  cfg.ONNX.Library,
			Input:    cfg.ONNX.Input,
			Output:   cfg.ONNX.Output,
			Features: tbl.Attributes.Len(),
			Classes:  tbl.Labels.Len(),
		},
	})
	if err != nil {
		return nil, err
	}
	if c, ok := clf.(io.Closer); ok {
		d.closers = append(d.closers, c)
	}
	if err := classifier.CheckCompat(manifest, clf, tbl.Attributes.Names(), tbl.Labels.Len()); err != nil {
		d.Close()
		return nil, err
	}
	logger.Info("model: %s %s", manifest.Kind, manifest.Version)
	d.engine = suggest.NewEngine(tbl.Attributes, clf, tbl.Labels)

	d.care = care.Empty()
	if cfg.Data.Care != "" {
		if d.care, err = care.Load(cfg.Data.Care); err != nil {
			d.Close()
			return nil, err
		}
		logger.Info("care table: %d diagnoses", d.care.Len())
	}
	return d, nil
}

// openRecorder builds the session recorder: the CSV log, plus the SQLite
// mirror when log.sqlite is set.
func (d *deps) openRecorder() (*recorder.Recorder, error) {
	sinks := recorder.Tee{recorder.NewCSVSink(d.cfg.Log.CSV)}
	if p := d.cfg.Log.SQLite; p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.closers = append(d.closers, st)
		sinks = append(sinks, st.EvaluationRepo())
		logger.Info("mirroring evaluations to %s", p)
	}
	return recorder.New(sinks), nil
}

// Close releases the model session and the store.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i].Close())
	}
	d.closers = nil
	return errors.Join(errs...)
}
