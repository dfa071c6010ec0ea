package recorder

import (
	"context"
	"errors"
	"sync"
)

// Tee fans rows out to every sink in order. All sinks are attempted; their
// errors are joined.
type Tee []Sink

var _ Sink = Tee(nil)

// Append writes rows to each sink.
func (t Tee) Append(ctx context.Context, rows []Row) error {
	var errs []error
	for _, s := range t {
		if err := s.Append(ctx, rows); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemorySink keeps rows in memory. Err, when set, is returned by Append
// instead of storing.
type MemorySink struct {
	mu   sync.Mutex
	rows []Row
	Err  error
}

var _ Sink = (*MemorySink)(nil)

// Append stores rows.
func (m *MemorySink) Append(_ context.Context, rows []Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.rows = append(m.rows, rows...)
	return nil
}

// Rows returns a copy of everything appended so far.
func (m *MemorySink) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Row, len(m.rows))
	copy(out, m.rows)
	return out
}
