// Package dataset loads the historical case table whose header defines the
// symptom feature order and whose label column defines the diagnosis classes.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/nandadx/internal/diagnosis"
)

// DefaultLabelColumn is the label column name used by the training table.
const DefaultLabelColumn = "diagnostico_de_Enfermagem"

// ErrLabelColumnMissing is returned when the table header lacks the label column.
var ErrLabelColumnMissing = errors.New("label column not found")

// Table is the part of the case table the application consumes.
type Table struct {
	Attributes *Attributes
	Labels     *diagnosis.Labels
	Rows       int
}

// Load reads a CSV (or TSV, by extension) case table from path.
func Load(path, labelColumn string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	comma := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}
	t, err := Read(f, comma, labelColumn)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Read parses a delimited case table. Every header column except
// labelColumn becomes an attribute, in header order.
func Read(r io.Reader, comma rune, labelColumn string) (*Table, error) {
	if labelColumn == "" {
		labelColumn = DefaultLabelColumn
	}
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, fmt.Errorf("header: %w", err)
	}

	labelIdx := -1
	names := make([]string, 0, len(header))
	for i, cell := range header {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		if cell == labelColumn {
			labelIdx = i
			continue
		}
		names = append(names, cell)
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrLabelColumnMissing, labelColumn)
	}

	var values []string
	rows := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rows+2, err)
		}
		rows++
		if labelIdx < len(rec) {
			values = append(values, rec[labelIdx])
		}
	}

	return &Table{
		Attributes: NewAttributes(names),
		Labels:     diagnosis.NewLabels(values),
		Rows:       rows,
	}, nil
}
