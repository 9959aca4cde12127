package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"debtster_report/internal/config/connections/postgres"
	"debtster_report/internal/models"
)

// SnapshotRepo loads all four report relations inside one repeatable-read
// read-only transaction, so the aggregation stages observe the same
// point-in-time view even while the import side keeps writing.
type SnapshotRepo struct {
	pg *postgres.Postgres

	debtors  *DebtorsRepo
	debts    *DebtsRepo
	actions  *ActionsRepo
	payments *PaymentsRepo
}

func NewSnapshotRepo(pg *postgres.Postgres) *SnapshotRepo {
	return &SnapshotRepo{
		pg:       pg,
		debtors:  NewDebtorsRepo(""),
		debts:    NewDebtsRepo(""),
		actions:  NewActionsRepo(""),
		payments: NewPaymentsRepo(""),
	}
}

func (r *SnapshotRepo) Load(ctx context.Context) (models.Snapshot, error) {
	tx, err := r.pg.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var snap models.Snapshot

	if snap.Debtors, err = r.debtors.List(ctx, tx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Debts, err = r.debts.List(ctx, tx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Actions, err = r.actions.List(ctx, tx); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Payments, err = r.payments.List(ctx, tx); err != nil {
		return models.Snapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Snapshot{}, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return snap, nil
}
