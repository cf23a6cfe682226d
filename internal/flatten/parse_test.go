package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestExtractQuarter(t *testing.T) {
	tests := []struct {
		period *string
		want   *string
	}{
		{ptr("first_quarter"), ptr("Q1")},
		{ptr("second_quarter"), ptr("Q2")},
		{ptr("third_quarter"), ptr("Q3")},
		{ptr("fourth_quarter"), ptr("Q4")},
		{ptr("mid_year"), nil},
		{ptr("year_end"), nil},
		{ptr("Q1"), nil},
		{ptr(""), nil},
		{nil, nil},
	}

	for _, tt := range tests {
		name := "<nil>"
		if tt.period != nil {
			name = *tt.period
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractQuarter(tt.period))
		})
	}
}

func TestExtractQuarter_OnlyKnownValues(t *testing.T) {
	valid := map[string]bool{"Q1": true, "Q2": true, "Q3": true, "Q4": true}
	inputs := []string{"first_quarter", "mid_year", "FIRST_QUARTER", "fourth_quarter ", "registration", "6", "\x00"}
	for _, in := range inputs {
		in := in
		got := ExtractQuarter(&in)
		if got != nil {
			assert.True(t, valid[*got], "ExtractQuarter(%q) = %q", in, *got)
		}
	}
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, ParseDate(nil))
	assert.Nil(t, ParseDate(ptr("")))
	assert.Equal(t, ptr("2024-03-15"), ParseDate(ptr("2024-03-15T00:00:00")))
	assert.Equal(t, ptr("2024-03-15"), ParseDate(ptr("2024-03-15T14:22:03.123-04:00")))
	assert.Equal(t, ptr("2024-03-15"), ParseDate(ptr("2024-03-15")))
	assert.Equal(t, ptr("2024"), ParseDate(ptr("2024")))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *float64
	}{
		{"nil", nil, nil},
		{"empty", ptr(""), nil},
		{"plain", ptr("20000.00"), f(20000)},
		{"thousands separators", ptr("1,234.50"), f(1234.50)},
		{"millions", ptr("1,000,000"), f(1000000)},
		{"whitespace", ptr(" 50.5 "), f(50.5)},
		{"blank", ptr("   "), nil},
		{"words", ptr("ten thousand"), nil},
		{"currency sign", ptr("$100"), nil},
		{"nan", ptr("NaN"), nil},
		{"inf", ptr("Inf"), nil},
		{"signed exponent", ptr("-1.5e3"), f(-1500)},
		{"underscore separators", ptr("1_000"), nil},
		{"hex float", ptr("0x1p4"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func f(v float64) *float64 { return &v }
