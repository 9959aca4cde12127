package models

// Debtor is the read-side projection of a debtors row. The report only
// needs the display name; the rest of the debtor card stays in Postgres.
type Debtor struct {
	ID        string
	FirstName string
	LastName  string
}
