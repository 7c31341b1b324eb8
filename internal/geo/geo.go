// Package geo contains the pure geographic computations the engines run on.
//
// Distances are approximations: haversine great-circle miles scaled by a fixed
// road factor. The core never calls an external routing API for admission
// decisions; externally sourced ETAs belong to other parts of the platform.
package geo

import (
	"fmt"
	"math"

	"multidrop-routing-service/internal/domain"
)

const (
	earthRadiusMiles = 3958.8

	// Great-circle distance understates real road distance; the fixed 15%
	// uplift keeps duration and detour estimates honest without an external
	// routing call.
	roadFactor = 1.15
)

// Distance returns the approximate road distance in miles between two points.
// Distance(a, a) is 0 and Distance is symmetric.
func Distance(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c * roadFactor
}

// RouteDistance chains Distance over consecutive points.
func RouteDistance(points ...domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Corridor derives the coarse geographic bucket for a pickup and its drops:
// the bounding box over all points, scaled by 100 and rounded to integers.
// The id is deterministic for identical inputs; it is used as a cache and
// grouping key, so determinism matters more than collision resistance.
func Corridor(pickup domain.Coordinates, drops []domain.Coordinates) string {
	minLat, maxLat := pickup.Lat, pickup.Lat
	minLng, maxLng := pickup.Lng, pickup.Lng

	for _, d := range drops {
		minLat = math.Min(minLat, d.Lat)
		maxLat = math.Max(maxLat, d.Lat)
		minLng = math.Min(minLng, d.Lng)
		maxLng = math.Max(maxLng, d.Lng)
	}

	return fmt.Sprintf("%d_%d_%d_%d",
		int(math.Round(minLat*100)),
		int(math.Round(maxLat*100)),
		int(math.Round(minLng*100)),
		int(math.Round(maxLng*100)),
	)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
