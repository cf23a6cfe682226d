package datasets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/lda-connector/internal/dataset"
	"github.com/dvloznov/lda-connector/internal/flatten"
)

func str(v string) *string   { return &v }
func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

var quarters = []string{"Q1", "Q2", "Q3", "Q4"}

func filingRows(n int) []flatten.FilingRow {
	rows := make([]flatten.FilingRow, 0, n)
	for i := 0; i < n; i++ {
		var quarter *string
		if i%5 != 0 {
			quarter = str(quarters[i%4])
		}
		rows = append(rows, flatten.FilingRow{
			FilingUUID:      str(fmt.Sprintf("uuid-%04d", i)),
			FilingYear:      i64(int64(2020 + i%5)),
			FilingQuarter:   quarter,
			FilingType:      str("Q1"),
			PostedDate:      str("2024-03-15"),
			RegistrantID:    i64(int64(i)),
			RegistrantName:  str("ACME LOBBYING"),
			RegistrantState: str("DC"),
			ClientName:      str("Widgets Inc"),
			Income:          f64(50000),
		})
	}
	return rows
}

func activityRows(n int) []flatten.ActivityRow {
	rows := make([]flatten.ActivityRow, 0, n)
	for i := 0; i < n; i++ {
		row := flatten.ActivityRow{
			FilingUUID: str(fmt.Sprintf("uuid-%04d", i/3)),
			FilingYear: i64(2024),
			IssueCode:  str(fmt.Sprintf("C%02d", i%12)),
			IssueArea:  str(fmt.Sprintf("Area %d", i%12)),
		}
		if i%2 == 0 {
			row.LobbyistNames = []string{"Jane Doe"}
		}
		rows = append(rows, row)
	}
	return rows
}

func requireRule(t *testing.T, err error, rule, column string) {
	t.Helper()
	var ve *dataset.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	assert.Equal(t, rule, ve.Rule)
	assert.Equal(t, column, ve.Column)
}

func TestFilings_Valid(t *testing.T) {
	rec := BuildFilings(filingRows(100))
	defer rec.Release()

	assert.Equal(t, int64(100), rec.NumRows())
	assert.Equal(t, len(Filings.Schema.Columns), int(rec.NumCols()))
	assert.NoError(t, Filings.Validate(rec))
}

func TestFilings_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]flatten.FilingRow) []flatten.FilingRow
		rule   string
		column string
	}{
		{
			name: "duplicate uuid",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[7].FilingUUID = rows[3].FilingUUID
				return rows
			},
			rule: "unique", column: "filing_uuid",
		},
		{
			name:   "too few rows",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow { return rows[:99] },
			rule:   "min_rows",
		},
		{
			name: "year before range",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[0].FilingYear = i64(1850)
				return rows
			},
			rule: "in_range", column: "filing_year",
		},
		{
			name: "year after range",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[50].FilingYear = i64(2099)
				return rows
			},
			rule: "in_range", column: "filing_year",
		},
		{
			name: "null filing type",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[10].FilingType = nil
				return rows
			},
			rule: "not_null", column: "filing_type",
		},
		{
			name: "long filing type",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[10].FilingType = str("LONG")
				return rows
			},
			rule: "max_length", column: "filing_type",
		},
		{
			name: "bad posted date",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[10].PostedDate = str("2024-13-01")
				return rows
			},
			rule: "valid_date", column: "posted_date",
		},
		{
			name: "spelled out state",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[2].RegistrantState = str("Virginia")
				return rows
			},
			rule: "sampled_length", column: "registrant_state",
		},
		{
			name: "unknown quarter",
			mutate: func(rows []flatten.FilingRow) []flatten.FilingRow {
				rows[1].FilingQuarter = str("mid_year")
				return rows
			},
			rule: "in_set", column: "filing_quarter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := BuildFilings(tt.mutate(filingRows(100)))
			defer rec.Release()
			requireRule(t, Filings.Validate(rec), tt.rule, tt.column)
		})
	}
}

func TestFilings_NullPostedDateAllowed(t *testing.T) {
	rows := filingRows(100)
	rows[4].PostedDate = nil
	rows[5].RegistrantState = nil

	rec := BuildFilings(rows)
	defer rec.Release()
	assert.NoError(t, Filings.Validate(rec))
}

func TestActivities_Valid(t *testing.T) {
	rec := BuildActivities(activityRows(120))
	defer rec.Release()

	require.NoError(t, Activities.Validate(rec))
	assert.Equal(t, []string{"Jane Doe"}, dataset.ListAt(rec, "lobbyist_names", 0))
	assert.Nil(t, dataset.ListAt(rec, "lobbyist_names", 1))
	assert.Nil(t, dataset.ListAt(rec, "government_entities", 0))
}

func TestActivities_DuplicateFilingUUIDAllowed(t *testing.T) {
	rows := activityRows(100)
	for i := range rows {
		rows[i].FilingUUID = str("same-filing")
	}
	rec := BuildActivities(rows)
	defer rec.Release()
	assert.NoError(t, Activities.Validate(rec))
}

func TestActivities_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]flatten.ActivityRow) []flatten.ActivityRow
		rule   string
		column string
	}{
		{
			name: "null issue code",
			mutate: func(rows []flatten.ActivityRow) []flatten.ActivityRow {
				rows[3].IssueCode = nil
				return rows
			},
			rule: "not_null", column: "issue_code",
		},
		{
			name: "long issue code",
			mutate: func(rows []flatten.ActivityRow) []flatten.ActivityRow {
				rows[3].IssueCode = str("HEALTH")
				return rows
			},
			rule: "max_length", column: "issue_code",
		},
		{
			name: "ten issue areas",
			mutate: func(rows []flatten.ActivityRow) []flatten.ActivityRow {
				for i := range rows {
					rows[i].IssueArea = str(fmt.Sprintf("Area %d", i%10))
				}
				return rows
			},
			rule: "min_distinct", column: "issue_area",
		},
		{
			name:   "too few rows",
			mutate: func(rows []flatten.ActivityRow) []flatten.ActivityRow { return rows[:50] },
			rule:   "min_rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := BuildActivities(tt.mutate(activityRows(120)))
			defer rec.Release()
			requireRule(t, Activities.Validate(rec), tt.rule, tt.column)
		})
	}
}

func TestAll(t *testing.T) {
	defs := All()
	require.Len(t, defs, 2)
	assert.Equal(t, FilingsID, defs[0].ID)
	assert.Equal(t, ActivitiesID, defs[1].ID)
	for _, d := range defs {
		for _, c := range d.Schema.Columns {
			assert.NotEmpty(t, c.Description, "%s.%s", d.ID, c.Name)
		}
	}
}
