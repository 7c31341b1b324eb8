package domain

import "time"

type TimeWindow string

const (
	WindowAM     TimeWindow = "AM"
	WindowPM     TimeWindow = "PM"
	WindowAllDay TimeWindow = "ALL_DAY"
)

type RouteStatus string

const (
	RoutePlanning   RouteStatus = "planning"
	RouteReady      RouteStatus = "ready"
	RouteDispatched RouteStatus = "dispatched"
	RouteCompleted  RouteStatus = "completed"
)

// CanTransitionTo enforces the candidate lifecycle:
// planning -> ready -> dispatched -> completed, with planning -> dispatched
// allowed for ad-hoc dispatches.
func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	switch s {
	case RoutePlanning:
		return next == RouteReady || next == RouteDispatched
	case RouteReady:
		return next == RouteDispatched
	case RouteDispatched:
		return next == RouteCompleted
	default:
		return false
	}
}

// RouteCandidate is a shared route being filled inside one corridor.
// It is the only long-lived mutable entity owned by this core; concurrency
// control on its capacity lives in the repository (ReserveCapacity), not here.
type RouteCandidate struct {
	ID              string
	Corridor        string
	Date            time.Time
	Window          TimeWindow
	CurrentWeightKg float64
	CurrentVolumeM3 float64
	MaxWeightKg     float64
	MaxVolumeM3     float64
	FillRate        float64 // 0-100
	StopCount       int
	Status          RouteStatus
	VehicleID       string
	DriverID        string // empty until dispatch
}

// RemainingWeightKg is the uncommitted weight capacity.
func (r RouteCandidate) RemainingWeightKg() float64 {
	return r.MaxWeightKg - r.CurrentWeightKg
}

// RemainingVolumeM3 is the uncommitted volume capacity.
func (r RouteCandidate) RemainingVolumeM3() float64 {
	return r.MaxVolumeM3 - r.CurrentVolumeM3
}

// RouteGroup is one capacity- and time-window-bounded cluster produced by the
// grouping optimizer. Booking order within the group is admission order.
type RouteGroup struct {
	ID                   string
	BookingIDs           []string
	TotalDistanceMiles   float64
	TotalDurationMinutes float64
	TotalValue           float64
	OptimizationScore    float64
}
