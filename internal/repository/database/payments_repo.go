package database

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"debtster_report/internal/models"
)

type PaymentsRepo struct {
	table string
}

func NewPaymentsRepo(table string) *PaymentsRepo {
	if table == "" {
		table = "payments"
	}
	return &PaymentsRepo{table: table}
}

// List reads every payment with its signed amount. The amount comes back as
// text and is parsed into decimal so reversal netting never goes through
// float64.
func (r *PaymentsRepo) List(ctx context.Context, q Querier) ([]models.Payment, error) {
	query := `SELECT debt_id, amount::text FROM ` + r.table

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	out := make([]models.Payment, 0)
	for rows.Next() {
		var (
			p   models.Payment
			amt *string
		)
		if err := rows.Scan(&p.DebtID, &amt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if amt != nil {
			p.Amount, err = decimal.NewFromString(*amt)
			if err != nil {
				return nil, fmt.Errorf("parse payment amount %q: %w", *amt, err)
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
