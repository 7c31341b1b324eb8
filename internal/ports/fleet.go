package ports

import (
	"context"
	"time"

	"multidrop-routing-service/internal/domain"
)

// Port: a boundary for querying driver shifts and vehicle capacity.
type FleetDirectory interface {
	// Return shifts with status "available" on the given date.
	AvailableDrivers(ctx context.Context, date time.Time) ([]domain.DriverShift, error)
	// Return vehicles whose capacity covers the given load summary.
	SuitableVehicles(ctx context.Context, load domain.LoadSummary) ([]domain.VehicleCapacity, error)
}
