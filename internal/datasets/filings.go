package datasets

import (
	"github.com/apache/arrow/go/v17/arrow"

	"github.com/dvloznov/lda-connector/internal/dataset"
	"github.com/dvloznov/lda-connector/internal/flatten"
)

// FilingsID is the identifier of the filings dataset.
const FilingsID = "lda_filings"

// Filings has one row per filing (LD-1 registration or LD-2 quarterly report).
var Filings = Definition{
	ID:    FilingsID,
	Title: "LDA Lobbying Filings",
	Description: "Lobbying Disclosure Act filings from the US Senate. Each row is one filing " +
		"(LD-1 registration or LD-2 quarterly report). Contains registrant (lobbying firm), " +
		"client (who paid), and reported amounts.",
	Schema: dataset.Schema{
		Columns: []dataset.Column{
			{Name: "filing_uuid", Type: dataset.String, Description: "Unique identifier for the filing"},
			{Name: "filing_year", Type: dataset.Int, Description: "Year of the filing"},
			{Name: "filing_quarter", Type: dataset.String, Description: "Quarter (Q1, Q2, Q3, Q4, or null for registrations)"},
			{Name: "filing_type", Type: dataset.String, Description: "Filing type code (RR=Registration, Q1-Q4=Quarterly, etc.)"},
			{Name: "filing_type_display", Type: dataset.String, Description: "Human-readable filing type"},
			{Name: "posted_date", Type: dataset.String, Description: "Date the filing was posted (YYYY-MM-DD)"},
			{Name: "termination_date", Type: dataset.String, Description: "Date of termination if applicable (YYYY-MM-DD)"},
			{Name: "registrant_id", Type: dataset.Int, Description: "Unique ID of the registrant (lobbying firm)"},
			{Name: "registrant_name", Type: dataset.String, Description: "Name of the registrant (lobbying firm)"},
			{Name: "registrant_state", Type: dataset.String, Description: "State where registrant is located (2-letter)"},
			{Name: "client_id", Type: dataset.Int, Description: "Unique ID of the client"},
			{Name: "client_name", Type: dataset.String, Description: "Name of the client (who paid for lobbying)"},
			{Name: "client_state", Type: dataset.String, Description: "State where client is located (2-letter)"},
			{Name: "client_country", Type: dataset.String, Description: "Country where client is located (2-letter ISO)"},
			{Name: "income", Type: dataset.Double, Description: "Income reported in USD (for firms lobbying on behalf of clients)"},
			{Name: "expenses", Type: dataset.Double, Description: "Expenses reported in USD (for organizations lobbying for themselves)"},
		},
		NotNull: []string{"filing_uuid", "filing_year", "filing_type"},
		Unique:  []string{"filing_uuid"},
		MinRows: 100,
	},
	Checks: []dataset.Check{
		dataset.InRange("filing_year", 1999, 2030),
		dataset.ValidDate("posted_date"),
		dataset.MaxLength("filing_type", 3),
		dataset.SampledLength("registrant_state", 2, 100),
		dataset.InSet("filing_quarter", true, "Q1", "Q2", "Q3", "Q4"),
	},
}

// BuildFilings materializes rows as a filings record. The caller must Release it.
func BuildFilings(rows []flatten.FilingRow) arrow.Record {
	b := dataset.NewBuilder(Filings.Schema)
	defer b.Release()

	for _, r := range rows {
		b.String("filing_uuid", r.FilingUUID)
		b.Int("filing_year", r.FilingYear)
		b.String("filing_quarter", r.FilingQuarter)
		b.String("filing_type", r.FilingType)
		b.String("filing_type_display", r.FilingTypeDisplay)
		b.String("posted_date", r.PostedDate)
		b.String("termination_date", r.TerminationDate)
		b.Int("registrant_id", r.RegistrantID)
		b.String("registrant_name", r.RegistrantName)
		b.String("registrant_state", r.RegistrantState)
		b.Int("client_id", r.ClientID)
		b.String("client_name", r.ClientName)
		b.String("client_state", r.ClientState)
		b.String("client_country", r.ClientCountry)
		b.Double("income", r.Income)
		b.Double("expenses", r.Expenses)
	}
	return b.Record()
}
