package models

// Debt links a debt to its debtor. DebtorID is nullable in the schema, so a
// debt can exist without a resolvable debtor and still flows through the
// report as an outer-join miss.
type Debt struct {
	ID       string
	DebtorID *string
}
