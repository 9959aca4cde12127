package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
)

// Download streams a stored export back to the caller. Accepts the same
// path forms the run records carry: s3://bucket/key, an https url, or a
// bare key in the default bucket.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "use GET"})
		return
	}

	p := strings.TrimSpace(r.URL.Query().Get("path"))
	if p == "" {
		h.JSON(w, http.StatusBadRequest, map[string]string{"error": "path is required"})
		return
	}
	if h.Opener == nil {
		h.JSON(w, http.StatusInternalServerError, map[string]string{"error": "download not configured"})
		return
	}

	rc, meta, err := h.Opener.Open(r.Context(), p)
	if err != nil {
		h.Logger.Printf("[DOWNLOAD][ERR] path=%q err=%v", p, err)
		h.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	defer rc.Close()

	name := path.Base(meta.Key)
	if name == "" || name == "." {
		name = path.Base(p)
	}

	if meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	if meta.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", meta.Size))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	if _, err := io.Copy(w, rc); err != nil {
		h.Logger.Printf("[DOWNLOAD][ERR] stream path=%q err=%v", p, err)
	}
}
