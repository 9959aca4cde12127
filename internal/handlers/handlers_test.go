package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"debtster_report/internal/models"
	"debtster_report/internal/ports"
	"debtster_report/internal/services/report"
)

type staticReporter struct {
	name string
	rows []models.ReportRow
}

func (s staticReporter) Name() string { return s.name }
func (s staticReporter) Rows(ctx context.Context) ([]models.ReportRow, error) {
	return s.rows, nil
}

func testHandlers(registry map[string]ports.Reporter) *Handlers {
	return &Handlers{
		Reports: report.NewService(registry),
		Logger:  log.Default(),
	}
}

func TestRunReport_rejectsBadJSON(t *testing.T) {
	h := testHandlers(map[string]ports.Reporter{})

	req := httptest.NewRequest("POST", "/report/run", strings.NewReader("{nope"))
	rr := httptest.NewRecorder()
	h.RunReport(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRunReport_rejectsUnknownFormat(t *testing.T) {
	h := testHandlers(map[string]ports.Reporter{})

	req := httptest.NewRequest("POST", "/report/run", strings.NewReader(`{"format":"pdf"}`))
	rr := httptest.NewRecorder()
	h.RunReport(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRunReport_rejectsUnknownType(t *testing.T) {
	h := testHandlers(map[string]ports.Reporter{})

	req := httptest.NewRequest("POST", "/report/run", strings.NewReader(`{"type":"nope"}`))
	rr := httptest.NewRecorder()
	h.RunReport(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestReportRows_returnsRows(t *testing.T) {
	first, last := "Ana", "Alvarez"
	h := testHandlers(map[string]ports.Reporter{
		"unpaid_efforts": staticReporter{name: "unpaid_efforts", rows: []models.ReportRow{
			{DebtID: "10", FirstName: &first, LastName: &last, EffortCount: 3},
		}},
	})

	req := httptest.NewRequest("GET", "/report/rows", nil)
	rr := httptest.NewRecorder()
	h.ReportRows(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
		Rows  []struct {
			FirstName   *string     `json:"first_name"`
			EffortCount int         `json:"effort_count"`
			TotalPaid   interface{} `json:"total_paid"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Rows) != 1 {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
	if resp.Rows[0].TotalPaid != nil {
		t.Fatalf("total_paid must serialize as null, got %v", resp.Rows[0].TotalPaid)
	}
	if resp.Rows[0].FirstName == nil || *resp.Rows[0].FirstName != "Ana" {
		t.Fatalf("unexpected first_name: %s", rr.Body.String())
	}
}

func TestReportRows_unknownType(t *testing.T) {
	h := testHandlers(map[string]ports.Reporter{})

	req := httptest.NewRequest("GET", "/report/rows?type=nope", nil)
	rr := httptest.NewRecorder()
	h.ReportRows(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

type fakeOpener struct {
	meta ports.Meta
	body string
}

func (f fakeOpener) Open(ctx context.Context, filePath string) (io.ReadCloser, ports.Meta, error) {
	return io.NopCloser(strings.NewReader(f.body)), f.meta, nil
}

func TestDownload_streamsObject(t *testing.T) {
	h := testHandlers(nil)
	h.Opener = fakeOpener{
		body: "first_name,last_name\n",
		meta: ports.Meta{ContentType: "text/csv", Size: 21, Key: "reports/unpaid_efforts-x.csv"},
	}

	req := httptest.NewRequest("GET", "/reports/download?path=s3://reports/reports/unpaid_efforts-x.csv", nil)
	rr := httptest.NewRecorder()
	h.Download(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "unpaid_efforts-x.csv") {
		t.Fatalf("unexpected disposition %q", rr.Header().Get("Content-Disposition"))
	}
	if rr.Body.String() != "first_name,last_name\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestDownload_requiresPath(t *testing.T) {
	h := testHandlers(nil)

	req := httptest.NewRequest("GET", "/reports/download", nil)
	rr := httptest.NewRecorder()
	h.Download(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
