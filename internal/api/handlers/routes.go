package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"multidrop-routing-service/internal/api/dto"
	"multidrop-routing-service/internal/domain"
	"multidrop-routing-service/internal/ports"
	"multidrop-routing-service/internal/services"
)

// RouteHandler exposes bulk grouping and incremental route admission.
type RouteHandler struct {
	Optimizer *services.GroupingOptimizer
	Bookings  ports.BookingRepository
	Log       zerolog.Logger
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, "invalid json body")
		return
	}

	var bookings []domain.BookingLite
	switch {
	case len(req.Bookings) > 0:
		bookings = make([]domain.BookingLite, 0, len(req.Bookings))
		for _, b := range req.Bookings {
			if strings.TrimSpace(b.BookingID) == "" {
				writeError(w, r, h.Log, http.StatusBadRequest, "every booking needs a booking_id")
				return
			}
			bookings = append(bookings, b.ToDomain())
		}
	case strings.TrimSpace(req.Corridor) != "":
		if h.Bookings == nil {
			writeError(w, r, h.Log, http.StatusBadRequest, "corridor grouping is not available")
			return
		}
		if req.From == nil || req.To == nil {
			writeError(w, r, h.Log, http.StatusBadRequest, "from and to are required with corridor")
			return
		}
		var err error
		bookings, err = h.Bookings.PendingInCorridor(r.Context(), req.Corridor, *req.From, *req.To)
		if err != nil {
			h.Log.Error().Err(err).Str("corridor", req.Corridor).Msg("pending bookings lookup failed")
			writeError(w, r, h.Log, http.StatusInternalServerError, "internal server error")
			return
		}
	default:
		writeError(w, r, h.Log, http.StatusBadRequest, "bookings or corridor is required")
		return
	}

	groups := h.Optimizer.CreateOptimalRoutes(bookings)
	writeJSON(w, r, h.Log, http.StatusOK, dto.NewOptimizeResponse(groups))
}

func (h *RouteHandler) CanAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, h.Log, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CanAddRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, h.Log, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(req.RouteID) == "" {
		writeError(w, r, h.Log, http.StatusBadRequest, "route_id is required")
		return
	}
	if req.MaxDetourPct <= 0 || req.MaxAdditionalTimeMinutes <= 0 {
		writeError(w, r, h.Log, http.StatusBadRequest, "max_detour_pct and max_additional_time_minutes must be positive")
		return
	}

	existing := make([]domain.BookingLite, 0, len(req.Existing))
	for _, b := range req.Existing {
		existing = append(existing, b.ToDomain())
	}

	check := h.Optimizer.CanAddBookingToRoute(req.RouteID, existing, req.Booking.ToDomain(), req.MaxDetourPct, req.MaxAdditionalTimeMinutes)
	writeJSON(w, r, h.Log, http.StatusOK, dto.NewCanAddResponse(check))
}
