package dto

import "multidrop-routing-service/internal/domain"

type AvailabilityRequest struct {
	RequestID string    `json:"request_id"`
	Pickup    Address   `json:"pickup"`
	Drops     []Address `json:"drops"`
	Load      Load      `json:"load"`
}

type AvailabilityResponse struct {
	NextAvailableDate string  `json:"next_available_date"`
	Window            string  `json:"window"`
	RouteType         string  `json:"route_type"`
	Confidence        int     `json:"confidence"`
	Explanation       string  `json:"explanation"`
	CapacityUsedPct   float64 `json:"capacity_used_pct"`
	FillRate          float64 `json:"fill_rate"`
	RouteID           string  `json:"route_id,omitempty"`
	DispatchTime      string  `json:"dispatch_time,omitempty"`
}

func NewAvailabilityResponse(r domain.AvailabilityResult) AvailabilityResponse {
	return AvailabilityResponse{
		NextAvailableDate: r.NextAvailableDate.Format("2006-01-02"),
		Window:            string(r.Window),
		RouteType:         string(r.RouteType),
		Confidence:        r.Confidence,
		Explanation:       r.Explanation,
		CapacityUsedPct:   r.CapacityUsedPct,
		FillRate:          r.FillRate,
		RouteID:           r.RouteID,
		DispatchTime:      r.DispatchTime,
	}
}
