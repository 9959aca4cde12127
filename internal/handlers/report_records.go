package handlers

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"debtster_report/internal/repository/reports"
)

// ReportRecords lists past report runs, newest first.
func (h *Handlers) ReportRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	recs, total, err := reports.ListReportRecords(r.Context(), h.Mongo, filter, limit, skip)
	if err != nil {
		h.Logger.Printf("[RECORDS][ERR] list: %v", err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"items": recs,
		"total": total,
	})
}
