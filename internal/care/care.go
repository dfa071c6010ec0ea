// Package care reads the care-instructions table: one column per diagnosis,
// whose first data cell lists instructions separated by tabs.
package care

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the care table read when none is configured.
const DefaultPath = "cuidados_diags.csv"

// Table maps diagnosis names to care instructions.
type Table struct {
	byDiagnosis map[string][]string
}

// Empty returns a table with no instructions.
func Empty() *Table {
	return &Table{byDiagnosis: map[string][]string{}}
}

// Load reads the care table at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open care table: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Read parses a care table. Only the header and first data row are used.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		first = nil
	} else if err != nil {
		return nil, fmt.Errorf("read instructions: %w", err)
	}

	t := Empty()
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" || i >= len(first) {
			continue
		}
		if items := split(first[i]); len(items) > 0 {
			t.byDiagnosis[name] = items
		}
	}
	return t, nil
}

func split(cell string) []string {
	var out []string
	for _, item := range strings.Split(cell, "\t") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Instructions returns the care instructions for a diagnosis, or nil for
// unknown diagnoses and empty cells.
func (t *Table) Instructions(diagnosis string) []string {
	items := t.byDiagnosis[diagnosis]
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Len returns the number of diagnoses with instructions.
func (t *Table) Len() int {
	return len(t.byDiagnosis)
}
