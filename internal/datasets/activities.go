package datasets

import (
	"github.com/apache/arrow/go/v17/arrow"

	"github.com/dvloznov/lda-connector/internal/dataset"
	"github.com/dvloznov/lda-connector/internal/flatten"
)

// ActivitiesID is the identifier of the lobbying activities dataset.
const ActivitiesID = "lda_lobbying_activities"

// minIssueAreas is exclusive: the dataset must cover more issue areas than this.
const minIssueAreas = 10

// Activities has one row per lobbying activity of a filing.
var Activities = Definition{
	ID:    ActivitiesID,
	Title: "LDA Lobbying Activities",
	Description: "Lobbying activities from LDA filings. Each row is one lobbying activity from a filing, " +
		"with issue code, description, and lobbyists involved. Use this to search for lobbying on specific issues.",
	Schema: dataset.Schema{
		Columns: []dataset.Column{
			{Name: "filing_uuid", Type: dataset.String, Description: "Unique identifier of the parent filing"},
			{Name: "filing_year", Type: dataset.Int, Description: "Year of the filing"},
			{Name: "registrant_name", Type: dataset.String, Description: "Name of the lobbying firm"},
			{Name: "client_name", Type: dataset.String, Description: "Name of the client"},
			{Name: "issue_code", Type: dataset.String, Description: "General issue area code (e.g., HCR for Healthcare)"},
			{Name: "issue_area", Type: dataset.String, Description: "Human-readable issue area name"},
			{Name: "description", Type: dataset.String, Description: "Description of the specific lobbying activity"},
			{Name: "lobbyist_names", Type: dataset.List, Description: "Names of lobbyists who worked on this activity"},
			{Name: "government_entities", Type: dataset.List, Description: "Government entities lobbied (if specified)"},
		},
		NotNull: []string{"filing_uuid", "filing_year", "issue_code"},
		MinRows: 100,
	},
	Checks: []dataset.Check{
		dataset.InRange("filing_year", 1999, 2030),
		dataset.MaxLength("issue_code", 5),
		dataset.MoreDistinctThan("issue_area", minIssueAreas),
	},
}

// BuildActivities materializes rows as an activities record. The caller must Release it.
func BuildActivities(rows []flatten.ActivityRow) arrow.Record {
	b := dataset.NewBuilder(Activities.Schema)
	defer b.Release()

	for _, r := range rows {
		b.String("filing_uuid", r.FilingUUID)
		b.Int("filing_year", r.FilingYear)
		b.String("registrant_name", r.RegistrantName)
		b.String("client_name", r.ClientName)
		b.String("issue_code", r.IssueCode)
		b.String("issue_area", r.IssueArea)
		b.String("description", r.Description)
		b.List("lobbyist_names", r.LobbyistNames)
		b.List("government_entities", r.GovernmentEntities)
	}
	return b.Record()
}
