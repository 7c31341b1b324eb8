package domain

import "math"

// Immutable geographic coordinates (latitude, longitude in decimal degrees).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are finite and inside the WGS84 range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// IsZero reports whether the coordinates are the unset zero value.
// A zero point is treated as missing input, never as a real location.
func (c Coordinates) IsZero() bool { return c.Lat == 0 && c.Lng == 0 }
