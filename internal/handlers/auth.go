package handlers

import (
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/paperdigest/internal/models"
)

// HandleCheckAuth makes one cheap provider call to confirm the configured
// credentials are accepted.
func (h *Handler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	if err := h.provider.CheckAuth(r.Context()); err != nil {
		slog.Error("Provider authentication check failed", "provider", h.provider.Name(), "err", err)
		writeJSONStatus(w, http.StatusInternalServerError, models.AuthResponse{
			Status:  models.AuthError,
			Message: err.Error(),
		})
		return
	}

	h.writeJSON(w, models.AuthResponse{Status: models.AuthOK, Message: "Authentication successful"})
}
