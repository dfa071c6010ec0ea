package store

import (
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	evaluationsTable = "evaluations"
	sequenceTable    = "evaluation_sequence"
)

var (
	// evaluationsColumns holds the columns of the evaluations table.
	evaluationsColumns = []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "recorded_at", Type: field.TypeInt64},
		{Name: "initials", Type: field.TypeString},
		{Name: "diagnosis", Type: field.TypeString},
		{Name: "symptoms", Type: field.TypeString},
		{Name: "selected", Type: field.TypeString},
		{Name: "observations", Type: field.TypeString},
		{Name: "rating", Type: field.TypeInt},
		{Name: "elapsed_seconds", Type: field.TypeFloat64},
	}
	// evaluationsSchema is the append-only evaluation log.
	evaluationsSchema = &entschema.Table{
		Name:       evaluationsTable,
		Columns:    evaluationsColumns,
		PrimaryKey: []*entschema.Column{evaluationsColumns[0]},
		Indexes: []*entschema.Index{
			{Name: "evaluation_session_id", Columns: []*entschema.Column{evaluationsColumns[2]}},
			{Name: "evaluation_recorded_at", Columns: []*entschema.Column{evaluationsColumns[3]}},
		},
	}

	sequenceColumns = []*entschema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// sequenceSchema holds the single counter row.
	sequenceSchema = &entschema.Table{
		Name:       sequenceTable,
		Columns:    sequenceColumns,
		PrimaryKey: []*entschema.Column{sequenceColumns[0]},
	}

	tables = []*entschema.Table{evaluationsSchema, sequenceSchema}
)
