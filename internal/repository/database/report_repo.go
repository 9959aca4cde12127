package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"debtster_report/internal/config/connections/postgres"
	"debtster_report/internal/models"
)

// unpaidEffortsQuery is the canonical pushdown form of the report. Both
// child relations are aggregated to one row per debt_id before any join, so
// the join fan-out stays 1:1 and the count and sum cannot multiply each
// other. The filter keeps debts with an effort aggregate and no payment
// aggregate at all; a payment sum of exactly 0 is still a present aggregate
// and is excluded.
const unpaidEffortsQuery = `
	WITH effort_totals AS (
		SELECT debt_id, COUNT(*) AS effort_count
		FROM actions
		GROUP BY debt_id
	),
	payment_totals AS (
		SELECT debt_id, SUM(amount) AS total_paid
		FROM payments
		GROUP BY debt_id
	),
	debtor_names AS (
		SELECT id, first_name, last_name
		FROM debtors
		GROUP BY id, first_name, last_name
	)
	SELECT d.id, dn.first_name, dn.last_name, et.effort_count, pt.total_paid::text
	FROM debts d
	LEFT JOIN debtor_names dn ON dn.id = d.debtor_id
	LEFT JOIN effort_totals et ON et.debt_id = d.id
	LEFT JOIN payment_totals pt ON pt.debt_id = d.id
	WHERE et.effort_count IS NOT NULL
	  AND pt.total_paid IS NULL
`

type ReportRepo struct {
	pg *postgres.Postgres
}

func NewReportRepo(pg *postgres.Postgres) *ReportRepo {
	return &ReportRepo{pg: pg}
}

// UnpaidEfforts executes the report server-side and scans the result rows.
func (r *ReportRepo) UnpaidEfforts(ctx context.Context) ([]models.ReportRow, error) {
	rows, err := r.pg.Pool.Query(ctx, unpaidEffortsQuery)
	if err != nil {
		return nil, fmt.Errorf("unpaid efforts query: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReportRow, 0)
	for rows.Next() {
		var (
			row         models.ReportRow
			effortCount int64
			totalPaid   *string
		)
		if err := rows.Scan(&row.DebtID, &row.FirstName, &row.LastName, &effortCount, &totalPaid); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		row.EffortCount = int(effortCount)
		if totalPaid != nil {
			d, err := decimal.NewFromString(*totalPaid)
			if err != nil {
				return nil, fmt.Errorf("parse total_paid %q: %w", *totalPaid, err)
			}
			row.TotalPaid = &d
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
