package recorder

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultCSVPath is the log file written when none is configured.
const DefaultCSVPath = "resultado_avaliacoes.csv"

// Header is the first line of a fresh CSV log.
var Header = []string{
	"Iniciais do Usuário",
	"Diagnóstico",
	"Sintomas",
	"Observações",
	"Avaliação",
	"Tempo de Seleção (s)",
}

// CSVSink appends rows to a CSV file, writing Header first when the file is
// empty. The file is opened and closed on every Append.
type CSVSink struct {
	Path string
}

var _ Sink = (*CSVSink)(nil)

// NewCSVSink returns a sink for path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Append writes rows. With no rows, a fresh file still gets its header.
func (s *CSVSink) Append(ctx context.Context, rows []Row) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close log: %w", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat log: %w", err)
	}

	w := bufio.NewWriter(f)
	if info.Size() == 0 {
		writeRecord(w, Header)
	}
	for _, r := range rows {
		writeRecord(w, r.fields())
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// writeRecord writes fields as one CRLF-terminated line, quoting only fields
// that contain a comma, a double quote, CR or LF. Leading spaces and
// embedded newlines are written as they are. Errors stick to w and surface
// on Flush.
func writeRecord(w *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		if !strings.ContainsAny(field, ",\"\r\n") {
			w.WriteString(field)
			continue
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}

func (r Row) fields() []string {
	return []string{
		r.Initials,
		r.Diagnosis,
		r.Symptoms,
		r.Observations,
		strconv.Itoa(r.Rating),
		FormatSeconds(r.ElapsedSeconds),
	}
}

// FormatSeconds renders elapsed seconds with at least one decimal, so whole
// values read "3.0" rather than "3".
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
