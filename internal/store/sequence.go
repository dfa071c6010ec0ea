package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out a monotonic sequence number per stored row, so
// history reads back in write order even when clocks disagree. The mutex
// serializes within the process; RETURNING makes the reservation atomic in
// the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the counter row if the table is empty.
func newSequenceCounter(drv *entsql.Driver, db *sql.DB) (*sequenceCounter, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if err := drv.Exec(context.Background(), query, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Reserve atomically claims n consecutive sequence numbers and returns the
// first.
func (sc *sequenceCounter) Reserve(ctx context.Context, n int) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var first int64
	err := sc.db.QueryRowContext(ctx,
		"UPDATE "+sequenceTable+" SET next_val = next_val + ? WHERE id = 1 RETURNING next_val - ?",
		n, n,
	).Scan(&first)
	if err != nil {
		return 0, fmt.Errorf("reserve sequence: %w", err)
	}
	return first, nil
}
