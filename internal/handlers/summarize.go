package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/models"
	"github.com/lehigh-university-libraries/paperdigest/internal/summarizing"
)

func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	if r.ContentLength > h.maxUploadBytes {
		h.writeError(w, r, apperror.PayloadTooLarge(h.maxUploadBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var request summarizing.Request
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, apperror.PayloadTooLarge(h.maxUploadBytes))
			return
		}
		h.writeError(w, r, apperror.MissingInput("Invalid JSON: "+err.Error()))
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, models.SummaryResponse{Summary: summary})
}
