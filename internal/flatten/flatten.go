// Package flatten projects raw LDA filings into the rows of the lda_filings
// and lda_lobbying_activities datasets. Both flatteners are pure.
package flatten

import (
	"strings"

	"github.com/dvloznov/lda-connector/internal/record"
)

// Filings emits one row per filing, in input order.
func Filings(filings []record.Value) []FilingRow {
	rows := make([]FilingRow, 0, len(filings))
	for _, f := range filings {
		rows = append(rows, Filing(f))
	}
	return rows
}

// Filing flattens a single raw filing. Absent registrant or client objects
// read as empty.
func Filing(f record.Value) FilingRow {
	registrant := f.Get("registrant")
	client := f.Get("client")

	return FilingRow{
		FilingUUID:        f.Get("filing_uuid").StringPtr(),
		FilingYear:        f.Get("filing_year").IntPtr(),
		FilingQuarter:     ExtractQuarter(f.Get("filing_period").StringPtr()),
		FilingType:        f.Get("filing_type").StringPtr(),
		FilingTypeDisplay: f.Get("filing_type_display").StringPtr(),
		PostedDate:        ParseDate(f.Get("dt_posted").StringPtr()),
		TerminationDate:   ParseDate(f.Get("termination_date").StringPtr()),
		RegistrantID:      registrant.Get("id").IntPtr(),
		RegistrantName:    registrant.Get("name").StringPtr(),
		RegistrantState:   registrant.Get("state").StringPtr(),
		ClientID:          client.Get("id").IntPtr(),
		ClientName:        client.Get("name").StringPtr(),
		ClientState:       client.Get("state").StringPtr(),
		ClientCountry:     client.Get("country").StringPtr(),
		Income:            amount(f.Get("income")),
		Expenses:          amount(f.Get("expenses")),
	}
}

// amount accepts both the API's string amounts and plain JSON numbers.
func amount(v record.Value) *float64 {
	s, ok := v.Text()
	if !ok {
		return nil
	}
	return ParseAmount(&s)
}

// Activities emits one row per lobbying activity, filings in input order and
// activities in filing order. Filings without activities contribute nothing.
func Activities(filings []record.Value) []ActivityRow {
	var rows []ActivityRow
	for _, f := range filings {
		rows = append(rows, FilingActivities(f)...)
	}
	return rows
}

// FilingActivities flattens the lobbying_activities list of one filing.
func FilingActivities(f record.Value) []ActivityRow {
	activities := f.Get("lobbying_activities").List()
	if len(activities) == 0 {
		return nil
	}

	uuid := f.Get("filing_uuid").StringPtr()
	year := f.Get("filing_year").IntPtr()
	registrantName := f.Path("registrant", "name").StringPtr()
	clientName := f.Path("client", "name").StringPtr()

	rows := make([]ActivityRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, ActivityRow{
			FilingUUID:         uuid,
			FilingYear:         year,
			RegistrantName:     registrantName,
			ClientName:         clientName,
			IssueCode:          a.Get("general_issue_code").StringPtr(),
			IssueArea:          a.Get("general_issue_code_display").StringPtr(),
			Description:        a.Get("description").StringPtr(),
			LobbyistNames:      lobbyistNames(a),
			GovernmentEntities: governmentEntities(a),
		})
	}
	return rows
}

// lobbyistNames joins first and last name of each lobbyist entry. An entry is
// skipped only when both names are absent or empty.
func lobbyistNames(activity record.Value) []string {
	var names []string
	for _, entry := range activity.Get("lobbyists").List() {
		lobbyist := entry.Get("lobbyist")
		first, _ := lobbyist.Get("first_name").AsString()
		last, _ := lobbyist.Get("last_name").AsString()
		if first == "" && last == "" {
			continue
		}
		names = append(names, strings.TrimSpace(first+" "+last))
	}
	return names
}

func governmentEntities(activity record.Value) []string {
	var names []string
	for _, e := range activity.Get("government_entities").List() {
		if name, ok := e.Get("name").AsString(); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}
