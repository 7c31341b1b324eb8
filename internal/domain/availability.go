package domain

import "time"

type RouteType string

const (
	RouteEconomy  RouteType = "economy"
	RouteStandard RouteType = "standard"
	RouteExpress  RouteType = "express"
)

// AvailabilityResult is the immutable answer to one availability calculation.
// It is returned to the caller and logged, never persisted as mutable state.
type AvailabilityResult struct {
	NextAvailableDate time.Time
	Window            TimeWindow
	RouteType         RouteType
	Confidence        int // 0-100
	Explanation       string
	CapacityUsedPct   float64
	FillRate          float64
	RouteID           string // set when an existing candidate was matched
	DispatchTime      string // "08:00", empty when unknown
}
