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

// EligibilityHandler exposes the multi-drop eligibility check.
type EligibilityHandler struct {
	Engine *services.EligibilityEngine
	Log    zerolog.Logger
}

func (h *EligibilityHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EligibilityRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.BookingID) == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "booking_id is required")
		return
	}

	verdict, err := h.Engine.Analyze(r.Context(), req.ToDomain())
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, h.Log, http.StatusBadRequest, verr.Error())
			return
		}
		h.Log.Error().Err(err).Str("booking_id", req.BookingID).Msg("eligibility analysis failed")
		writeError(w, r, h.Log, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, h.Log, http.StatusOK, dto.NewEligibilityResponse(verdict))
}
