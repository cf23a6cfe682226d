package dataset

import (
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

func stringColumn(rec arrow.Record, rule, name string) (*array.String, error) {
	arr, err := column(rec, name)
	if err != nil {
		return nil, err
	}
	s, ok := arr.(*array.String)
	if !ok {
		return nil, fail(rule, name, "want string column, got %s", arr.DataType())
	}
	return s, nil
}

// InRange requires every non-null value of an int column to lie in [min, max].
func InRange(name string, min, max int64) Check {
	return func(rec arrow.Record) error {
		arr, err := column(rec, name)
		if err != nil {
			return err
		}
		ints, ok := arr.(*array.Int64)
		if !ok {
			return fail("in_range", name, "want int column, got %s", arr.DataType())
		}
		for i := 0; i < ints.Len(); i++ {
			if ints.IsNull(i) {
				continue
			}
			if v := ints.Value(i); v < min || v > max {
				return fail("in_range", name, "row %d: %d outside [%d, %d]", i, v, min, max)
			}
		}
		return nil
	}
}

// ValidDate requires each value of a string column to be null or a YYYY-MM-DD calendar date.
func ValidDate(name string) Check {
	return func(rec arrow.Record) error {
		s, err := stringColumn(rec, "valid_date", name)
		if err != nil {
			return err
		}
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				continue
			}
			v := s.Value(i)
			if len(v) != 10 {
				return fail("valid_date", name, "row %d: %q is not YYYY-MM-DD", i, v)
			}
			if _, err := civil.ParseDate(v); err != nil {
				return fail("valid_date", name, "row %d: %q is not YYYY-MM-DD", i, v)
			}
		}
		return nil
	}
}

// MaxLength bounds the character length of every non-null string value.
func MaxLength(name string, max int) Check {
	return func(rec arrow.Record) error {
		s, err := stringColumn(rec, "max_length", name)
		if err != nil {
			return err
		}
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				continue
			}
			if n := utf8.RuneCountInString(s.Value(i)); n > max {
				return fail("max_length", name, "row %d: %q has %d characters, max %d", i, s.Value(i), n, max)
			}
		}
		return nil
	}
}

// SampledLength requires the first sample non-empty values of a string column
// to have exactly length characters.
func SampledLength(name string, length, sample int) Check {
	return func(rec arrow.Record) error {
		s, err := stringColumn(rec, "sampled_length", name)
		if err != nil {
			return err
		}
		checked := 0
		for i := 0; i < s.Len() && checked < sample; i++ {
			if s.IsNull(i) || s.Value(i) == "" {
				continue
			}
			checked++
			if n := utf8.RuneCountInString(s.Value(i)); n != length {
				return fail("sampled_length", name, "row %d: %q has %d characters, want %d", i, s.Value(i), n, length)
			}
		}
		return nil
	}
}

// InSet requires every value of a string column to be one of allowed, or null
// when allowNull is set.
func InSet(name string, allowNull bool, allowed ...string) Check {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(rec arrow.Record) error {
		s, err := stringColumn(rec, "in_set", name)
		if err != nil {
			return err
		}
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				if !allowNull {
					return fail("in_set", name, "row %d: null not allowed", i)
				}
				continue
			}
			if _, ok := set[s.Value(i)]; !ok {
				return fail("in_set", name, "row %d: unexpected value %q", i, s.Value(i))
			}
		}
		return nil
	}
}

// MoreDistinctThan requires a string column to hold more than n distinct non-null values.
func MoreDistinctThan(name string, n int) Check {
	return func(rec arrow.Record) error {
		s, err := stringColumn(rec, "min_distinct", name)
		if err != nil {
			return err
		}
		if d := countDistinct(s); d <= n {
			return fail("min_distinct", name, "got %d distinct values, want more than %d", d, n)
		}
		return nil
	}
}

func countDistinct(s *array.String) int {
	distinct := make(map[string]struct{})
	for i := 0; i < s.Len(); i++ {
		if !s.IsNull(i) {
			distinct[s.Value(i)] = struct{}{}
		}
	}
	return len(distinct)
}
