package domain

import "fmt"

type LoadType string

const (
	FullLoad    LoadType = "FULL_LOAD"
	PartialLoad LoadType = "PARTIAL_LOAD"
)

// CapacityThresholds are the classification cut points. They are configuration
// inputs, not business constants baked into the code.
type CapacityThresholds struct {
	// At or above this overall utilization the load is FULL_LOAD.
	FullLoad float64
	// At or below this overall utilization the load is PARTIAL_LOAD.
	// The band between the two is treated as FULL_LOAD: sharing is never
	// offered on the margin.
	PartialLoad float64
}

// CapacityUtilization is the single gate consumed by pricing when deciding
// whether multi-drop discounting is permitted.
type CapacityUtilization struct {
	WeightUtilization     float64
	VolumeUtilization     float64
	OverallUtilization    float64
	LoadType              LoadType
	RouteSharingAvailable bool
	Rationale             string
}

// ClassifyCapacity compares an aggregate load against a vehicle's capacity.
// Overall utilization is the limiting factor: the max of weight and volume
// ratios. Ratios are not clamped; values above 1.0 represent overflow and are
// meaningful to callers (e.g. split-load offers).
func ClassifyCapacity(load LoadSummary, vehicle VehicleCapacity, t CapacityThresholds) CapacityUtilization {
	weight := 0.0
	if vehicle.MaxWeightKg > 0 {
		weight = load.TotalWeightKg / vehicle.MaxWeightKg
	}
	volume := 0.0
	if vehicle.MaxVolumeM3 > 0 {
		volume = load.TotalVolumeM3 / vehicle.MaxVolumeM3
	}

	overall := weight
	if volume > overall {
		overall = volume
	}

	u := CapacityUtilization{
		WeightUtilization:  weight,
		VolumeUtilization:  volume,
		OverallUtilization: overall,
	}

	switch {
	case overall >= t.FullLoad:
		u.LoadType = FullLoad
		u.RouteSharingAvailable = false
		u.Rationale = fmt.Sprintf(
			"Full load at %.1f%% capacity (weight %.1f%%, volume %.1f%%) - route sharing not available.",
			overall*100, weight*100, volume*100,
		)
	case overall <= t.PartialLoad:
		u.LoadType = PartialLoad
		u.RouteSharingAvailable = true
		u.Rationale = fmt.Sprintf(
			"Partial load at %.1f%% capacity - route sharing available.",
			overall*100,
		)
	default:
		u.LoadType = FullLoad
		u.RouteSharingAvailable = false
		u.Rationale = fmt.Sprintf(
			"Near-full load at %.1f%% capacity - treated as full load, route sharing not available.",
			overall*100,
		)
	}

	return u
}
