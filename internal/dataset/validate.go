package dataset

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// ValidationError reports the first broken rule of a dataset.
type ValidationError struct {
	Rule   string
	Column string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("validation failed [%s]: %s", e.Rule, e.Msg)
	}
	return fmt.Sprintf("validation failed [%s] on column %q: %s", e.Rule, e.Column, e.Msg)
}

func fail(rule, column, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Column: column, Msg: fmt.Sprintf(format, args...)}
}

// Check is a domain-specific rule run after the schema rules.
type Check func(rec arrow.Record) error

// Validate checks rec against schema and then each check, in this order:
// column presence and type, not-null, unique, minimum row count, checks.
// It returns the first violation as a *ValidationError.
func Validate(rec arrow.Record, schema Schema, checks ...Check) error {
	for _, c := range schema.Columns {
		arr, err := column(rec, c.Name)
		if err != nil {
			return err
		}
		if !arrow.TypeEqual(arr.DataType(), c.Type.DataType()) {
			return fail("type", c.Name, "declared %s, got %s", c.Type, arr.DataType())
		}
	}

	for _, name := range schema.NotNull {
		arr, err := column(rec, name)
		if err != nil {
			return err
		}
		if n := arr.NullN(); n > 0 {
			return fail("not_null", name, "%d null values", n)
		}
	}

	for _, name := range schema.Unique {
		arr, err := column(rec, name)
		if err != nil {
			return err
		}
		seen := make(map[string]int, arr.Len())
		for i := 0; i < arr.Len(); i++ {
			key, ok := scalarKey(arr, i)
			if !ok {
				continue
			}
			if first, dup := seen[key]; dup {
				return fail("unique", name, "duplicate value %q at rows %d and %d", key, first, i)
			}
			seen[key] = i
		}
	}

	if rows := rec.NumRows(); rows < int64(schema.MinRows) {
		return fail("min_rows", "", "got %d rows, want at least %d", rows, schema.MinRows)
	}

	for _, check := range checks {
		if err := check(rec); err != nil {
			return err
		}
	}
	return nil
}

func column(rec arrow.Record, name string) (arrow.Array, error) {
	idx := rec.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, fail("columns", name, "column missing")
	}
	return rec.Column(idx[0]), nil
}

// scalarKey renders a non-null scalar cell for set membership.
func scalarKey(arr arrow.Array, i int) (string, bool) {
	if arr.IsNull(i) {
		return "", false
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i), true
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10), true
	case *array.Float64:
		return strconv.FormatFloat(a.Value(i), 'g', -1, 64), true
	}
	return arr.ValueStr(i), true
}
