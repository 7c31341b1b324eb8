package ports

import (
	"context"
	"time"

	"multidrop-routing-service/internal/domain"
)

// Port: a boundary for reading bookings awaiting route assignment.
type BookingRepository interface {
	// Return unassigned bookings on the corridor scheduled within the range.
	PendingInCorridor(ctx context.Context, corridor string, from, to time.Time) ([]domain.BookingLite, error)
}
