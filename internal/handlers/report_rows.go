package handlers

import (
	"net/http"
)

// ReportRows computes the report synchronously and returns the rows as
// JSON. Meant for dashboards and spot checks; batch exports go through
// RunReport.
func (h *Handlers) ReportRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	typ := r.URL.Query().Get("type")
	if typ == "" {
		typ = "unpaid_efforts"
	}

	rows, err := h.Reports.Rows(r.Context(), typ)
	if err != nil {
		h.Logger.Printf("[ROWS][ERR] type=%q err=%v", typ, err)
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"type":  typ,
		"count": len(rows),
		"rows":  rows,
	})
}
