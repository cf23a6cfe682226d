// Package dataset holds the in-memory table representation of an output
// dataset (an Arrow record) and the rule engine that validates it before
// publication.
package dataset

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
)

// ColumnType is a declared column type.
type ColumnType int

const (
	String ColumnType = iota
	Int
	Double
	// List is a list of strings.
	List
)

func (t ColumnType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Double:
		return "double"
	case List:
		return "list"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// DataType returns the Arrow type backing t.
func (t ColumnType) DataType() arrow.DataType {
	switch t {
	case Int:
		return arrow.PrimitiveTypes.Int64
	case Double:
		return arrow.PrimitiveTypes.Float64
	case List:
		return arrow.ListOf(arrow.BinaryTypes.String)
	default:
		return arrow.BinaryTypes.String
	}
}

// Column declares one column.
type Column struct {
	Name        string
	Type        ColumnType
	Description string
}

// Schema is the declared shape and table-level constraints of a dataset.
type Schema struct {
	Columns []Column
	NotNull []string
	Unique  []string
	MinRows int
}

// DescriptionKey is the Arrow field metadata key carrying a column description.
const DescriptionKey = "description"

// Arrow builds the Arrow schema, attaching each column description as field metadata.
func (s Schema) Arrow() *arrow.Schema {
	fields := make([]arrow.Field, 0, len(s.Columns))
	for _, c := range s.Columns {
		f := arrow.Field{Name: c.Name, Type: c.Type.DataType(), Nullable: true}
		if c.Description != "" {
			f.Metadata = arrow.NewMetadata([]string{DescriptionKey}, []string{c.Description})
		}
		fields = append(fields, f)
	}
	return arrow.NewSchema(fields, nil)
}

// Descriptions returns column name → description.
func (s Schema) Descriptions() map[string]string {
	out := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		out[c.Name] = c.Description
	}
	return out
}
