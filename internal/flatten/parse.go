package flatten

import (
	"math"
	"strconv"
	"strings"
)

var quarters = map[string]string{
	"first_quarter":  "Q1",
	"second_quarter": "Q2",
	"third_quarter":  "Q3",
	"fourth_quarter": "Q4",
}

// ExtractQuarter maps a filing_period enum to Q1..Q4. mid_year (registrations),
// unknown periods and nil all map to nil.
func ExtractQuarter(period *string) *string {
	if period == nil {
		return nil
	}
	q, ok := quarters[*period]
	if !ok {
		return nil
	}
	return &q
}

// ParseDate keeps the YYYY-MM-DD prefix of an ISO-8601 timestamp.
// Nil or empty input yields nil. The function is total.
func ParseDate(ts *string) *string {
	if ts == nil || *ts == "" {
		return nil
	}
	s := *ts
	if r := []rune(s); len(r) > 10 {
		s = string(r[:10])
	}
	return &s
}

// ParseAmount parses a money string such as "1,234.50" into a float.
// Accepted forms are decimal numbers with an optional sign, fraction and
// exponent, with commas anywhere and surrounding whitespace ignored.
// Underscore digit separators ("1_000") and hexadecimal forms are rejected.
// Nil, empty, non-numeric and non-finite input yields nil. It never fails.
func ParseAmount(val *string) *float64 {
	if val == nil || *val == "" {
		return nil
	}
	s := strings.TrimSpace(strings.ReplaceAll(*val, ",", ""))
	if strings.ContainsAny(s, "xX") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}
