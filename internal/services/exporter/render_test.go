package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"

	"debtster_report/internal/models"
)

func strptr(s string) *string { return &s }

func sampleRows() []models.ReportRow {
	return []models.ReportRow{
		{DebtID: "10", FirstName: strptr("Ana"), LastName: strptr("Alvarez"), EffortCount: 3},
		{DebtID: "11", EffortCount: 1},
	}
}

func TestRenderCSV(t *testing.T) {
	b, ct, err := Render(sampleRows(), FormatCSV)
	if err != nil {
		t.Fatalf("render csv: %v", err)
	}
	if ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}

	recs, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(recs))
	}
	if got := recs[1]; got[0] != "Ana" || got[2] != "3" || got[3] != "" {
		t.Fatalf("unexpected first row: %v", got)
	}
	if got := recs[2]; got[0] != "" || got[1] != "" || got[2] != "1" {
		t.Fatalf("expected empty names for debtorless debt, got %v", got)
	}
}

func TestRenderXLSX(t *testing.T) {
	b, _, err := Render(sampleRows(), FormatXLSX)
	if err != nil {
		t.Fatalf("render xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("open back: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if got, _ := f.GetCellValue(sheet, "A1"); got != "first_name" {
		t.Fatalf("expected header in A1, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "A2"); got != "Ana" {
		t.Fatalf("expected Ana in A2, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "C2"); got != "3" {
		t.Fatalf("expected effort count 3 in C2, got %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "D2"); got != "" {
		t.Fatalf("expected empty total_paid, got %q", got)
	}
}

func TestRender_unknownFormat(t *testing.T) {
	if _, _, err := Render(nil, "pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

type fakeS3 struct {
	bucket string
	key    string
	data   []byte
	ct     string
}

func (f *fakeS3) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket, f.key, f.ct = bucket, key, opts.ContentType
	f.data, _ = io.ReadAll(r)
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: int64(len(f.data))}, nil
}

func TestUploader_keySchemeAndPath(t *testing.T) {
	fake := &fakeS3{}
	up := NewUploader(fake, "reports")

	res, err := up.Upload(context.Background(), "unpaid_efforts", FormatCSV, "text/csv", []byte("a,b\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(fake.key, "reports/unpaid_efforts-") || !strings.HasSuffix(fake.key, ".csv") {
		t.Fatalf("unexpected key %q", fake.key)
	}
	if res.Path != "s3://reports/"+fake.key {
		t.Fatalf("unexpected path %q", res.Path)
	}
	if res.SizeBytes != 4 || fake.ct != "text/csv" {
		t.Fatalf("unexpected upload result %+v ct=%q", res, fake.ct)
	}
}
