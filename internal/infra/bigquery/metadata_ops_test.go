package bigquery

import (
	"strings"
	"testing"

	"cloud.google.com/go/bigquery"
)

func TestWithDescriptions(t *testing.T) {
	schema := bigquery.Schema{
		{Name: "filing_uuid", Type: bigquery.StringFieldType},
		{Name: "income", Type: bigquery.FloatFieldType, Description: "kept"},
	}

	got := withDescriptions(schema, map[string]string{
		"filing_uuid": "Unique identifier for the filing",
		"unknown":     "ignored",
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got))
	}
	if got[0].Description != "Unique identifier for the filing" {
		t.Errorf("filing_uuid description = %q", got[0].Description)
	}
	if got[1].Description != "kept" {
		t.Errorf("income description = %q, want kept", got[1].Description)
	}
	if schema[0].Description != "" {
		t.Errorf("input schema was modified")
	}
}

func TestLabelValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3f1c9a2e-7b4d-4c8e-9f00-1a2b3c4d5e6f", "3f1c9a2e-7b4d-4c8e-9f00-1a2b3c4d5e6f"},
		{"Local Run", "local_run"},
		{"run_id", "run_id"},
		{"a.b/c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := labelValue(tt.in); got != tt.want {
			t.Errorf("labelValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := labelValue(strings.Repeat("x", 100)); len(got) != maxLabelLength {
		t.Errorf("expected label truncated to %d, got %d", maxLabelLength, len(got))
	}
}
