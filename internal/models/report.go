package models

import "github.com/shopspring/decimal"

// ReportRow is one (debtor, debt) pair surviving the unpaid-efforts filter.
//
// FirstName/LastName are nil when the debt has no resolvable debtor.
// TotalPaid is nil whenever no payment row exists for the debt; for the
// unpaid-efforts report that is every output row, by construction.
type ReportRow struct {
	DebtID      string           `json:"debt_id"`
	FirstName   *string          `json:"first_name"`
	LastName    *string          `json:"last_name"`
	EffortCount int              `json:"effort_count"`
	TotalPaid   *decimal.Decimal `json:"total_paid"`
}

// Snapshot is one consistent point-in-time view of the four relations the
// report reads. All four slices must come from the same transaction.
type Snapshot struct {
	Debtors  []Debtor
	Debts    []Debt
	Actions  []Action
	Payments []Payment
}
