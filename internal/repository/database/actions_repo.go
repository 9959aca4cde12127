package database

import (
	"context"
	"fmt"

	"debtster_report/internal/models"
)

type ActionsRepo struct {
	table string
}

func NewActionsRepo(table string) *ActionsRepo {
	if table == "" {
		table = "actions"
	}
	return &ActionsRepo{table: table}
}

func (r *ActionsRepo) List(ctx context.Context, q Querier) ([]models.Action, error) {
	query := `SELECT id, debt_id FROM ` + r.table

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Action, 0)
	for rows.Next() {
		var a models.Action
		if err := rows.Scan(&a.ID, &a.DebtID); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
