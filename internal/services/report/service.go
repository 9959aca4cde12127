package report

import (
	"context"
	"errors"
	"log"
	"time"

	"debtster_report/internal/config/connections/postgres"
	"debtster_report/internal/models"
	"debtster_report/internal/ports"
	"debtster_report/internal/repository/database"
)

// Service dispatches report runs by name, the way the import side
// dispatches processors by type.
type Service struct {
	Reporters map[string]ports.Reporter
}

func NewService(registry map[string]ports.Reporter) *Service {
	return &Service{Reporters: registry}
}

func (s *Service) Rows(ctx context.Context, name string) ([]models.ReportRow, error) {
	t0 := time.Now()
	log.Printf("[REPORT][START] type=%q", name)

	rep, ok := s.Reporters[name]
	if !ok {
		log.Printf("[REPORT][ERR] no reporter for type=%q", name)
		return nil, errors.New("no reporter for type: " + name)
	}

	rows, err := rep.Rows(ctx)
	if err != nil {
		log.Printf("[REPORT][ERR] type=%q err=%v", name, err)
		return nil, err
	}

	log.Printf("[REPORT][DONE] type=%q rows=%d duration=%s", name, len(rows), time.Since(t0))
	return rows, nil
}

// SnapshotLoader is the one method of database.SnapshotRepo the snapshot
// reporter needs; tests swap in a canned snapshot.
type SnapshotLoader interface {
	Load(ctx context.Context) (models.Snapshot, error)
}

// SnapshotReporter loads a consistent snapshot and runs the in-memory
// staged-map pipeline over it.
type SnapshotReporter struct {
	Snapshots SnapshotLoader
}

func (r SnapshotReporter) Name() string { return "unpaid_efforts" }

func (r SnapshotReporter) Rows(ctx context.Context) ([]models.ReportRow, error) {
	if r.Snapshots == nil {
		return nil, errors.New("snapshot loader not configured")
	}
	snap, err := r.Snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildUnpaidEfforts(snap), nil
}

// RowsFetcher is the pushdown side of database.ReportRepo.
type RowsFetcher interface {
	UnpaidEfforts(ctx context.Context) ([]models.ReportRow, error)
}

// SQLReporter runs the canonical CTE query server-side instead of pulling
// the relations over. Preferable once the tables outgrow the service.
type SQLReporter struct {
	Repo RowsFetcher
}

func (r SQLReporter) Name() string { return "unpaid_efforts_sql" }

func (r SQLReporter) Rows(ctx context.Context) ([]models.ReportRow, error) {
	if r.Repo == nil {
		return nil, errors.New("report repo not configured")
	}
	return r.Repo.UnpaidEfforts(ctx)
}

// DefaultRegistry wires the two execution paths of the unpaid-efforts
// report against live Postgres.
func DefaultRegistry(pg *postgres.Postgres) map[string]ports.Reporter {
	return map[string]ports.Reporter{
		"unpaid_efforts":     SnapshotReporter{Snapshots: database.NewSnapshotRepo(pg)},
		"unpaid_efforts_sql": SQLReporter{Repo: database.NewReportRepo(pg)},
	}
}
