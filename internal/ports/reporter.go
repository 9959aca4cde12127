package ports

import (
	"context"

	"debtster_report/internal/models"
)

// Reporter produces the rows of one named report. Implementations are
// registered by name and dispatched from the run request, the same way the
// import side dispatches processors by type.
type Reporter interface {
	Name() string
	Rows(ctx context.Context) ([]models.ReportRow, error)
}
