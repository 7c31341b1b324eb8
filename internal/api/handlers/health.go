package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
)

// HealthHandler provides a minimal liveness check endpoint.
type HealthHandler struct {
	Log zerolog.Logger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, h.Log, http.StatusOK, res)
}
