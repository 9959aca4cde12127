package database

import (
	"context"
	"fmt"

	"debtster_report/internal/models"
)

type DebtsRepo struct {
	table string
}

func NewDebtsRepo(table string) *DebtsRepo {
	if table == "" {
		table = "debts"
	}
	return &DebtsRepo{table: table}
}

func (r *DebtsRepo) List(ctx context.Context, q Querier) ([]models.Debt, error) {
	query := `SELECT id, debtor_id FROM ` + r.table

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Debt, 0)
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.DebtorID); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
