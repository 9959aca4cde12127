package report

import (
	"github.com/shopspring/decimal"

	"debtster_report/internal/models"
)

// BuildUnpaidEfforts computes the "collection efforts with no payments"
// report over one consistent snapshot.
//
// Each child relation is aggregated to at most one entry per debt_id BEFORE
// anything is joined. Joining actions and payments onto debts first and
// aggregating afterwards would fan each debt out to #efforts × #payments
// rows and multiply every count and sum by the size of the other side.
//
// A debt qualifies when its effort aggregate exists and its payment
// aggregate does not. Absence means no payment row at all: a debt whose
// payments net to exactly 0 still has an aggregate and is excluded.
func BuildUnpaidEfforts(snap models.Snapshot) []models.ReportRow {
	names := debtorNames(snap.Debtors)
	efforts := effortCounts(snap.Actions)
	paid := paymentTotals(snap.Payments)

	rows := make([]models.ReportRow, 0, len(efforts))
	for _, d := range snap.Debts {
		count, hasEfforts := efforts[d.ID]
		if !hasEfforts {
			continue
		}
		if _, hasPayments := paid[d.ID]; hasPayments {
			continue
		}

		row := models.ReportRow{DebtID: d.ID, EffortCount: count}
		if d.DebtorID != nil {
			if n, ok := names[*d.DebtorID]; ok {
				first, last := n.first, n.last
				row.FirstName = &first
				row.LastName = &last
			}
		}
		rows = append(rows, row)
	}
	return rows
}

type debtorName struct {
	first string
	last  string
}

// debtorNames collapses duplicate debtor rows to one entry per id. Source
// exports occasionally repeat the same debtor; when duplicate rows disagree
// on the names the last one read wins.
func debtorNames(debtors []models.Debtor) map[string]debtorName {
	m := make(map[string]debtorName, len(debtors))
	for _, d := range debtors {
		m[d.ID] = debtorName{first: d.FirstName, last: d.LastName}
	}
	return m
}

// effortCounts groups actions by debt. Debts without actions get no entry,
// never a zero entry: the final filter keys on presence.
func effortCounts(actions []models.Action) map[string]int {
	m := make(map[string]int, len(actions))
	for _, a := range actions {
		if a.DebtID == nil {
			continue
		}
		m[*a.DebtID]++
	}
	return m
}

// paymentTotals sums payment amounts per debt with exact decimal
// arithmetic. Like effortCounts, debts without payment rows are absent.
func paymentTotals(payments []models.Payment) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(payments))
	for _, p := range payments {
		if p.DebtID == nil {
			continue
		}
		m[*p.DebtID] = m[*p.DebtID].Add(p.Amount)
	}
	return m
}
