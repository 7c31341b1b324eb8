package services

import (
	"fmt"

	"multidrop-routing-service/internal/domain"
)

// PricingGate is the sole authority permitting multi-drop discounts. Pricing
// code elsewhere in the platform must route every discount decision through
// here; a FULL_LOAD classification always prices as a dedicated vehicle.
type PricingGate struct {
	thresholds domain.CapacityThresholds
}

func NewPricingGate(thresholds domain.CapacityThresholds) *PricingGate {
	return &PricingGate{thresholds: thresholds}
}

// Classify runs the capacity classifier with the gate's configured thresholds.
func (g *PricingGate) Classify(load domain.LoadSummary, vehicle domain.VehicleCapacity) domain.CapacityUtilization {
	return domain.ClassifyCapacity(load, vehicle, g.thresholds)
}

// DiscountAllowed reports whether any multi-drop discount may be applied to
// this load on this vehicle.
func (g *PricingGate) DiscountAllowed(load domain.LoadSummary, vehicle domain.VehicleCapacity) bool {
	return g.Classify(load, vehicle).RouteSharingAvailable
}

// AuthorizeDiscount returns the classification when sharing is permitted, or
// an error naming the load type when it is not. Callers apply discounts only
// on a nil error.
func (g *PricingGate) AuthorizeDiscount(load domain.LoadSummary, vehicle domain.VehicleCapacity) (domain.CapacityUtilization, error) {
	u := g.Classify(load, vehicle)
	if u.LoadType != domain.PartialLoad || !u.RouteSharingAvailable {
		return u, fmt.Errorf("authorize discount: %s classification at %.1f%% utilization does not permit sharing",
			u.LoadType, u.OverallUtilization*100)
	}
	return u, nil
}
