package ports

import (
	"context"

	"multidrop-routing-service/internal/domain"
)

// Port: a boundary for pricing a booking as a dedicated single-order job.
// Multi-drop discounts are applied downstream by the pricing engine; nothing
// in this service adjusts prices.
type PriceEstimator interface {
	SingleOrderPrice(ctx context.Context, distanceMiles float64, load domain.LoadSummary) (float64, error)
}
