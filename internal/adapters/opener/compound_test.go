package opener

import (
	"context"
	"testing"
)

func TestParseS3URL(t *testing.T) {
	bkt, key, err := parseS3URL("s3://reports/reports/unpaid_efforts-abc.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bkt != "reports" || key != "reports/unpaid_efforts-abc.csv" {
		t.Fatalf("got bucket=%q key=%q", bkt, key)
	}

	if _, _, err := parseS3URL("s3://onlybucket"); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, _, err := parseS3URL("gs://bucket/key"); err == nil {
		t.Fatalf("expected error for wrong scheme")
	}
}

func TestCompoundOpener_requiresBackend(t *testing.T) {
	c := NewCompoundOpener(nil, nil, "")

	if _, _, err := c.Open(context.Background(), "https://example.com/x.csv"); err == nil {
		t.Fatalf("expected error without http opener")
	}
	if _, _, err := c.Open(context.Background(), "s3://b/k"); err == nil {
		t.Fatalf("expected error without s3 opener")
	}
	if _, _, err := c.Open(context.Background(), "bare-key.csv"); err == nil {
		t.Fatalf("expected error without default bucket")
	}
}
