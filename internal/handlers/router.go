package handlers

import (
	"log/slog"
	"net/http"
)

// Router returns the full HTTP surface with logging, recovery and CORS applied.
func (h *Handler) Router(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/check-auth", h.HandleCheckAuth)
	mux.HandleFunc("/api/extract-text", h.HandleExtractText)
	mux.HandleFunc("/api/extract-images", h.HandleExtractImages)
	mux.HandleFunc("/api/summarize", h.HandleSummarize)
	mux.HandleFunc("/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	return withCORS(withRequestLog(mux), allowedOrigins)
}
