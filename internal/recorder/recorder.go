// Package recorder appends finished evaluation sessions to a durable log.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/selection"
)

// ErrSaveFailed wraps every failure to persist a session.
var ErrSaveFailed = errors.New("failed to save evaluation")

// SessionRecord is a finished session, written once.
type SessionRecord struct {
	SessionID      string
	Initials       string
	Selections     []selection.Entry
	Symptoms       []string // symptoms originally selected
	Observations   string
	Rating         int
	ElapsedSeconds float64
	RecordedAt     time.Time
}

// Row is one line of the log: a diagnosis with its formatted symptom list
// and the session fields shared by every row of the same call.
type Row struct {
	SessionID      string
	RecordedAt     time.Time
	Initials       string
	Diagnosis      string
	Symptoms       string
	Selected       []string
	Observations   string
	Rating         int
	ElapsedSeconds float64
}

// Sink persists rows. Implementations must not reorder rows.
type Sink interface {
	Append(ctx context.Context, rows []Row) error
}

// RoundElapsed rounds seconds to two decimals.
func RoundElapsed(seconds float64) float64 {
	return math.Round(seconds*100) / 100
}

// Rows expands a record into log rows, one per selection entry, in
// selection order.
func Rows(rec SessionRecord) []Row {
	rows := make([]Row, 0, len(rec.Selections))
	for _, e := range rec.Selections {
		rows = append(rows, Row{
			SessionID:      rec.SessionID,
			RecordedAt:     rec.RecordedAt,
			Initials:       rec.Initials,
			Diagnosis:      e.Diagnosis,
			Symptoms:       diagnosis.JoinSymptoms(e.Symptoms),
			Selected:       rec.Symptoms,
			Observations:   rec.Observations,
			Rating:         rec.Rating,
			ElapsedSeconds: rec.ElapsedSeconds,
		})
	}
	return rows
}

// Recorder writes session records to a Sink.
type Recorder struct {
	sink Sink
	now  func() time.Time
}

// New creates a recorder writing to sink.
func New(sink Sink) *Recorder {
	return &Recorder{sink: sink, now: time.Now}
}

// Record appends one row per selection entry. A missing session ID or
// timestamp is filled in. Failures are wrapped in ErrSaveFailed; nothing
// is retried and rows already written by a sink stay written.
func (r *Recorder) Record(ctx context.Context, rec SessionRecord) error {
	if rec.SessionID == "" {
		rec.SessionID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = r.now()
	}
	rec.ElapsedSeconds = RoundElapsed(rec.ElapsedSeconds)

	rows := Rows(rec)
	if err := r.sink.Append(ctx, rows); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	logger.Info("recorded session %s: %d rows", rec.SessionID, len(rows))
	return nil
}
