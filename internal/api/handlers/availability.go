package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/api/dto"
	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/services"
)

// AvailabilityHandler exposes the feasibility calculation.
type AvailabilityHandler struct {
	Engine *services.FeasibilityEngine
	Log    zerolog.Logger
}

// Calculate answers "when can we do this job" for one booking request.
// Address problems surface as 400s; collaborator failures never do, the
// engine degrades those to a fallback result internally.
func (h *AvailabilityHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AvailabilityRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.RequestID) == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "request_id is required")
		return
	}

	drops := make([]domain.StructuredAddress, 0, len(req.Drops))
	for _, d := range req.Drops {
		drops = append(drops, d.ToDomain())
	}

	result, err := h.Engine.CalculateAvailability(r.Context(), req.Pickup.ToDomain(), drops, req.Load.ToDomain(), req.RequestID)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, h.Log, http.StatusBadRequest, verr.Error())
			return
		}
		h.Log.Error().Err(err).Str("request_id", req.RequestID).Msg("availability calculation failed")
		writeError(w, r, h.Log, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.NewAvailabilityResponse(result))
}
