package pricing

import (
	"context"
	"errors"

	"multidrop-routing-service/internal/domain"
)

// StaticEstimator prices a dedicated single-order job from distance and load
// figures alone. The full pricing engine lives elsewhere in the platform;
// this estimator only feeds the alternative-option quotes shown alongside an
// eligibility verdict, so a flat tariff is acceptable.
type StaticEstimator struct {
	BaseFeeGBP float64
	PerMileGBP float64
	PerKgGBP   float64
	PerM3GBP   float64
	MinimumGBP float64
}

// NewStaticEstimator returns an estimator with the standard large-van tariff.
func NewStaticEstimator() *StaticEstimator {
	return &StaticEstimator{
		BaseFeeGBP: 45,
		PerMileGBP: 1.80,
		PerKgGBP:   0.50,
		PerM3GBP:   10,
		MinimumGBP: 60,
	}
}

func (e *StaticEstimator) SingleOrderPrice(ctx context.Context, distanceMiles float64, load domain.LoadSummary) (float64, error) {
	if distanceMiles < 0 {
		return 0, errors.New("single order price: distance must not be negative")
	}

	price := e.BaseFeeGBP +
		distanceMiles*e.PerMileGBP +
		load.TotalWeightKg*e.PerKgGBP +
		load.TotalVolumeM3*e.PerM3GBP

	if price < e.MinimumGBP {
		price = e.MinimumGBP
	}
	return price, nil
}
