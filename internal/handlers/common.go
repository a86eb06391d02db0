package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/extraction"
	"github.com/lehigh-university-libraries/paperdigest/internal/models"
	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
	"github.com/lehigh-university-libraries/paperdigest/internal/summarizing"
)

type Handler struct {
	extraction     *extraction.Service
	summarizer     *summarizing.Service
	provider       providers.Provider
	maxUploadBytes int64
}

// Deps are the services a Handler serves. They are built once at startup.
type Deps struct {
	Extraction     *extraction.Service
	Summarizer     *summarizing.Service
	Provider       providers.Provider
	MaxUploadBytes int64
}

func New(d Deps) *Handler {
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 32 << 20
	}
	return &Handler{
		extraction:     d.Extraction,
		summarizer:     d.Summarizer,
		provider:       d.Provider,
		maxUploadBytes: d.MaxUploadBytes,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	writeJSONStatus(w, http.StatusOK, data)
}

// writeError sends the JSON error envelope, with the status derived from the
// error's kind.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	attrs := []any{"path", r.URL.Path, "status", status, "kind", apperror.KindOf(err), "err", err}
	if id := RequestID(r.Context()); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", attrs...)
	} else {
		slog.Warn("Request rejected", attrs...)
	}
	writeJSONStatus(w, status, models.ErrorResponse{Error: apperror.Message(err)})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeJSONStatus(w, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "Method not allowed"})
}

func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}
