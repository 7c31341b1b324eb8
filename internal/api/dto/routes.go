package dto

import (
	"time"

	"multidrop-routing-service/internal/domain"
)

// OptimizeRequest carries either an inline booking list or a corridor window
// to group pending bookings from storage. Inline bookings win when both are set.
type OptimizeRequest struct {
	Bookings []BookingLite `json:"bookings,omitempty"`
	Corridor string        `json:"corridor,omitempty"`
	From     *time.Time    `json:"from,omitempty"`
	To       *time.Time    `json:"to,omitempty"`
}

type RouteGroupResponse struct {
	ID                   string   `json:"id"`
	BookingIDs           []string `json:"booking_ids"`
	TotalDistanceMiles   float64  `json:"total_distance_miles"`
	TotalDurationMinutes float64  `json:"total_duration_minutes"`
	TotalValue           float64  `json:"total_value"`
	OptimizationScore    float64  `json:"optimization_score"`
}

type OptimizeResponse struct {
	Routes []RouteGroupResponse `json:"routes"`
}

func NewOptimizeResponse(groups []domain.RouteGroup) OptimizeResponse {
	res := OptimizeResponse{Routes: make([]RouteGroupResponse, 0, len(groups))}
	for _, g := range groups {
		res.Routes = append(res.Routes, RouteGroupResponse{
			ID:                   g.ID,
			BookingIDs:           g.BookingIDs,
			TotalDistanceMiles:   g.TotalDistanceMiles,
			TotalDurationMinutes: g.TotalDurationMinutes,
			TotalValue:           g.TotalValue,
			OptimizationScore:    g.OptimizationScore,
		})
	}
	return res
}

type CanAddRequest struct {
	RouteID                  string        `json:"route_id"`
	Existing                 []BookingLite `json:"existing"`
	Booking                  BookingLite   `json:"booking"`
	MaxDetourPct             float64       `json:"max_detour_pct"`
	MaxAdditionalTimeMinutes float64       `json:"max_additional_time_minutes"`
}

type CanAddResponse struct {
	Feasible                bool    `json:"feasible"`
	AdditionalDistanceMiles float64 `json:"additional_distance_miles"`
	AdditionalTimeMinutes   float64 `json:"additional_time_minutes"`
	Reason                  string  `json:"reason,omitempty"`
}

func NewCanAddResponse(c domain.RouteAddCheck) CanAddResponse {
	return CanAddResponse{
		Feasible:                c.Feasible,
		AdditionalDistanceMiles: c.AdditionalDistanceMiles,
		AdditionalTimeMinutes:   c.AdditionalTimeMinutes,
		Reason:                  c.Reason,
	}
}
