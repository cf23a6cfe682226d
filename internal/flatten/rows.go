package flatten

// FilingRow is the flat projection of one raw filing. Nil fields are nulls.
type FilingRow struct {
	FilingUUID        *string
	FilingYear        *int64
	FilingQuarter     *string
	FilingType        *string
	FilingTypeDisplay *string
	PostedDate        *string
	TerminationDate   *string
	RegistrantID      *int64
	RegistrantName    *string
	RegistrantState   *string
	ClientID          *int64
	ClientName        *string
	ClientState       *string
	ClientCountry     *string
	Income            *float64
	Expenses          *float64
}

// ActivityRow is one lobbying activity of a filing, carrying a denormalized
// copy of the parent's identifiers. A nil list means null, never an empty list.
type ActivityRow struct {
	FilingUUID         *string
	FilingYear         *int64
	RegistrantName     *string
	ClientName         *string
	IssueCode          *string
	IssueArea          *string
	Description        *string
	LobbyistNames      []string
	GovernmentEntities []string
}
