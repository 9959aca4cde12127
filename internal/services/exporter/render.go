package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"debtster_report/internal/models"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

var header = []string{"first_name", "last_name", "effort_count", "total_paid"}

// Render serializes report rows in the requested format and returns the
// bytes with their content type.
func Render(rows []models.ReportRow, format string) ([]byte, string, error) {
	switch format {
	case FormatXLSX:
		b, err := renderXLSX(rows)
		return b, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatCSV:
		b, err := renderCSV(rows)
		return b, "text/csv", err
	default:
		return nil, "", errors.New("unsupported format: " + format)
	}
}

func renderXLSX(rows []models.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		vals := []any{orEmpty(r.FirstName), orEmpty(r.LastName), r.EffortCount, totalPaidCell(r)}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func renderCSV(rows []models.ReportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			orEmpty(r.FirstName),
			orEmpty(r.LastName),
			strconv.Itoa(r.EffortCount),
			totalPaidCell(r),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// totalPaidCell is empty for every unpaid-efforts row; rendering keeps the
// column anyway so the export matches the report's declared shape.
func totalPaidCell(r models.ReportRow) string {
	if r.TotalPaid == nil {
		return ""
	}
	return r.TotalPaid.String()
}
