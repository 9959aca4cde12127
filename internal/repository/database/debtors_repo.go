package database

import (
	"context"
	"fmt"

	"debtster_report/internal/models"
)

type DebtorsRepo struct {
	table string
}

func NewDebtorsRepo(table string) *DebtorsRepo {
	if table == "" {
		table = "debtors"
	}
	return &DebtorsRepo{table: table}
}

func (r *DebtorsRepo) List(ctx context.Context, q Querier) ([]models.Debtor, error) {
	query := `
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM ` + r.table

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}
	defer rows.Close()

	out := make([]models.Debtor, 0)
	for rows.Next() {
		var d models.Debtor
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName); err != nil {
			return nil, fmt.Errorf("scan debtor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
