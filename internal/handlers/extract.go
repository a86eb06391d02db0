package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
)

// formField is the multipart field carrying the upload.
const formField = "pdf"

func (h *Handler) HandleExtractText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	data, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.extraction.Text(data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, resp)
}

func (h *Handler) HandleExtractImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	data, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.extraction.Images(r.Context(), data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, resp)
}

// readUpload returns the bytes of the "pdf" multipart field. Bodies above
// the upload limit are rejected without being read in full.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.ContentLength > h.maxUploadBytes {
		return nil, apperror.PayloadTooLarge(h.maxUploadBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, _, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.PayloadTooLarge(h.maxUploadBytes)
		}
		return nil, apperror.MissingInput(apperror.MsgNoPDF)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}
