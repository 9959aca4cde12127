package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the read surface the list repos need. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so the same repos serve ad-hoc reads and the
// repeatable-read snapshot transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
