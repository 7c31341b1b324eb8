package ports

import (
	"context"
	"time"

	"multidrop-routing-service/internal/domain"
)

// Port: a boundary for storing and querying planned route candidates.
type RouteCandidateRepository interface {
	// Return open candidates on the corridor within the date range, any window.
	CandidatesInCorridor(ctx context.Context, corridor string, from, to time.Time) ([]domain.RouteCandidate, error)
	// Persist a new candidate in planning status.
	CreateCandidate(ctx context.Context, c domain.RouteCandidate) error
	// Move a candidate through its lifecycle. Invalid transitions are an error.
	UpdateStatus(ctx context.Context, routeID string, status domain.RouteStatus) error
	// Atomically claim capacity on a candidate. The claim succeeds only if the
	// load fits inside the remaining capacity after the buffer fraction is
	// held back. Returns false without error when the candidate is full.
	ReserveCapacity(ctx context.Context, routeID string, weightKg, volumeM3, buffer float64) (bool, error)
}
