package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/nandadx/internal/recorder"
)

// QueryOpts filters evaluation history.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	SessionID string    // only rows of this session
	From      time.Time // recorded_at >= From
	To        time.Time // recorded_at <= To
}

// Evaluation is a stored log row with its global sequence number.
type Evaluation struct {
	Sequence int64
	recorder.Row
}

// EvaluationRepo is the SQLite-backed evaluation log. It implements
// recorder.Sink.
type EvaluationRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ recorder.Sink = (*EvaluationRepo)(nil)

var evaluationColumns = []string{
	"sequence", "session_id", "recorded_at", "initials", "diagnosis",
	"symptoms", "selected", "observations", "rating", "elapsed_seconds",
}

// Append inserts rows in a single statement.
func (r *EvaluationRepo) Append(ctx context.Context, rows []recorder.Row) error {
	if len(rows) == 0 {
		return nil
	}
	first, err := r.seq.Reserve(ctx, len(rows))
	if err != nil {
		return err
	}

	ins := entsql.Dialect(dialect.SQLite).
		Insert(evaluationsTable).
		Columns(evaluationColumns...)
	for i, row := range rows {
		selected, err := json.Marshal(nonNil(row.Selected))
		if err != nil {
			return fmt.Errorf("encode selected symptoms: %w", err)
		}
		ins.Values(
			first+int64(i),
			row.SessionID,
			row.RecordedAt.UnixNano(),
			row.Initials,
			row.Diagnosis,
			row.Symptoms,
			string(selected),
			row.Observations,
			row.Rating,
			row.ElapsedSeconds,
		)
	}
	query, args := ins.Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert evaluations: %w", err)
	}
	return nil
}

// List returns stored rows, newest first.
func (r *EvaluationRepo) List(ctx context.Context, opts QueryOpts) ([]Evaluation, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(evaluationColumns...).
		From(entsql.Table(evaluationsTable))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("recorded_at", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("recorded_at", opts.To.UnixNano()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var (
			e        Evaluation
			recorded int64
			selected string
		)
		if err := rows.Scan(
			&e.Sequence,
			&e.SessionID,
			&recorded,
			&e.Initials,
			&e.Diagnosis,
			&e.Symptoms,
			&selected,
			&e.Observations,
			&e.Rating,
			&e.ElapsedSeconds,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.RecordedAt = time.Unix(0, recorded)
		if err := json.Unmarshal([]byte(selected), &e.Selected); err != nil {
			return nil, fmt.Errorf("decode selected symptoms: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}

// Count returns the number of stored rows.
func (r *EvaluationRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(evaluationsTable)).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	defer rows.Close()
	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
