package handlers

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/paperdigest/internal/models"
)

//go:embed static/index.html
var indexHTML []byte

func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		writeJSONStatus(w, http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexHTML); err != nil {
		slog.Error("Unable to write landing page", "err", err)
	}
}
