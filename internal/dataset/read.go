package dataset

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// StringAt returns the string cell at row of column name; ok is false for
// null cells and non-string columns.
func StringAt(rec arrow.Record, name string, row int) (string, bool) {
	arr, err := column(rec, name)
	if err != nil {
		return "", false
	}
	s, ok := arr.(*array.String)
	if !ok || s.IsNull(row) {
		return "", false
	}
	return s.Value(row), true
}

// ListAt returns the list cell at row of column name; nil for null cells.
func ListAt(rec arrow.Record, name string, row int) []string {
	arr, err := column(rec, name)
	if err != nil {
		return nil
	}
	l, ok := arr.(*array.List)
	if !ok || l.IsNull(row) {
		return nil
	}
	values, ok := l.ListValues().(*array.String)
	if !ok {
		return nil
	}
	start, end := l.ValueOffsets(row)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, values.Value(int(i)))
	}
	return out
}
