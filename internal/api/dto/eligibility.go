package dto

import (
	"time"

	"multidrop-routing-service/internal/domain"
)

type EligibilityRequest struct {
	BookingID   string    `json:"booking_id"`
	Pickup      Address   `json:"pickup"`
	Dropoff     Address   `json:"dropoff"`
	Load        Load      `json:"load"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (r EligibilityRequest) ToDomain() domain.BookingRequest {
	return domain.BookingRequest{
		ID:          r.BookingID,
		Pickup:      r.Pickup.ToDomain(),
		Dropoff:     r.Dropoff.ToDomain(),
		Load:        r.Load.ToDomain(),
		ScheduledAt: r.ScheduledAt,
	}
}

type ConstraintResponse struct {
	Passed bool    `json:"passed"`
	Value  float64 `json:"value"`
	Limit  float64 `json:"limit"`
	Reason string  `json:"reason,omitempty"`
}

type AlternativeResponse struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	EstimatedPrice float64 `json:"estimated_price"`
}

type EligibilityResponse struct {
	Eligible     bool                          `json:"eligible"`
	Reason       string                        `json:"reason,omitempty"`
	Confidence   int                           `json:"confidence"`
	Constraints  map[string]ConstraintResponse `json:"constraints"`
	Alternatives []AlternativeResponse         `json:"alternatives,omitempty"`
}

func NewEligibilityResponse(e domain.MultiDropEligibility) EligibilityResponse {
	res := EligibilityResponse{
		Eligible:   e.Eligible,
		Reason:     e.Reason,
		Confidence: e.Confidence,
		Constraints: map[string]ConstraintResponse{
			"load":        newConstraintResponse(e.LoadConstraint),
			"distance":    newConstraintResponse(e.DistanceConstraint),
			"time":        newConstraintResponse(e.TimeConstraint),
			"large_items": newConstraintResponse(e.LargeItemConstraint),
		},
	}
	for _, alt := range e.Alternatives {
		res.Alternatives = append(res.Alternatives, AlternativeResponse{
			Type:           string(alt.Type),
			Description:    alt.Description,
			EstimatedPrice: alt.EstimatedPrice,
		})
	}
	return res
}

func newConstraintResponse(c domain.ConstraintResult) ConstraintResponse {
	return ConstraintResponse{
		Passed: c.Passed,
		Value:  c.Value,
		Limit:  c.Limit,
		Reason: c.Reason,
	}
}
