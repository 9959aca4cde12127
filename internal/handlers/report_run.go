package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"debtster_report/internal/repository/reports"
	"debtster_report/internal/services/exporter"
	auth "debtster_report/internal/transport/auth"
)

var errNoUploader = errors.New("s3 uploader not configured")

type runRequest struct {
	Type       string `json:"type"`
	Format     string `json:"format"`
	Upload     bool   `json:"upload"`
	TimeoutMin int    `json:"timeout_minutes,omitempty"`
}

// RunReport starts a report run in the background: the run record goes to
// Mongo immediately and the caller polls GET /reports for completion,
// mirroring how imports are kicked off on the other side of the product.
func (h *Handlers) RunReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use POST"})
		return
	}

	var req runRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		h.Logger.Printf("[RUN][REQ][ERR] bad JSON: %v", err)
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad JSON: " + err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = "unpaid_efforts"
	}
	if req.Format == "" {
		req.Format = exporter.FormatXLSX
	}
	if req.Format != exporter.FormatXLSX && req.Format != exporter.FormatCSV {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "format must be xlsx or csv"})
		return
	}
	if _, ok := h.Reports.Reporters[req.Type]; !ok {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown report type: " + req.Type})
		return
	}

	rec := reports.Record{Type: req.Type, Format: req.Format, Status: reports.StatusRunning}
	if userID, err := auth.GetUserID(r.Context()); err == nil {
		rec.UserID = &userID
	}

	ins, err := reports.InsertReportRecord(r.Context(), h.Mongo, rec)
	if err != nil {
		h.Logger.Printf("[RUN][ERR] record insert: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	recID := ins.InsertedID

	reqCopy := req

	go func() {
		start := time.Now()

		timeout := 15 * time.Minute
		if reqCopy.TimeoutMin > 0 {
			timeout = time.Duration(reqCopy.TimeoutMin) * time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rows, err := h.Reports.Rows(ctx, reqCopy.Type)
		if err != nil {
			h.failRun(recID, reqCopy.Type, err)
			return
		}

		var path, bucket, key string
		var size int64
		if reqCopy.Upload {
			data, contentType, err := exporter.Render(rows, reqCopy.Format)
			if err != nil {
				h.failRun(recID, reqCopy.Type, err)
				return
			}
			if h.Uploader == nil {
				h.failRun(recID, reqCopy.Type, errNoUploader)
				return
			}
			res, err := h.Uploader.Upload(ctx, reqCopy.Type, reqCopy.Format, contentType, data)
			if err != nil {
				h.failRun(recID, reqCopy.Type, err)
				return
			}
			path, bucket, key, size = res.Path, res.Bucket, res.Key, res.SizeBytes
		}

		mctx, mcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer mcancel()
		if err := reports.MarkCompleted(mctx, h.Mongo, recID, len(rows), path, bucket, key, size); err != nil {
			h.Logger.Printf("[RUN][ERR] record update: %v", err)
		}

		h.Logger.Printf("[RUN][OK][BG] type=%q rows=%d uploaded=%v key=%q took=%s",
			reqCopy.Type, len(rows), reqCopy.Upload, key, time.Since(start))
	}()

	h.JSON(w, http.StatusAccepted, map[string]any{
		"status":           "started",
		"report_record_id": recID,
		"type":             req.Type,
		"format":           req.Format,
		"upload":           req.Upload,
	})
}

func (h *Handlers) failRun(recID any, typ string, cause error) {
	h.Logger.Printf("[RUN][ERR][BG] type=%q err=%v", typ, cause)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := reports.MarkFailed(ctx, h.Mongo, recID, cause.Error()); err != nil {
		h.Logger.Printf("[RUN][ERR] record update: %v", err)
	}
}
