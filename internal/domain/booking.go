package domain

import "time"

// BookingRequest is a full inbound pickup/drop-off request.
type BookingRequest struct {
	ID          string
	Pickup      StructuredAddress
	Dropoff     StructuredAddress
	Load        LoadSpec
	ScheduledAt time.Time
}

// BookingLite is the slim annotation the grouping optimizer works on:
// coordinates, schedule, load fraction, priority and monetary value.
type BookingLite struct {
	BookingID    string
	Pickup       Coordinates
	Dropoff      Coordinates
	ScheduledAt  time.Time
	LoadFraction float64 // 0-1, fraction of the reference vehicle
	Priority     int     // higher first
	ValueGBP     float64
}

// NewBookingLite converts a full booking plus its analyzed load into the
// optimizer's slim shape.
func NewBookingLite(req BookingRequest, load LoadSummary, vehicle VehicleCapacity, priority int, valueGBP float64) BookingLite {
	fraction := 0.0
	if vehicle.MaxWeightKg > 0 {
		fraction = load.TotalWeightKg / vehicle.MaxWeightKg
	}
	if vehicle.MaxVolumeM3 > 0 {
		if v := load.TotalVolumeM3 / vehicle.MaxVolumeM3; v > fraction {
			fraction = v
		}
	}

	return BookingLite{
		BookingID:    req.ID,
		Pickup:       req.Pickup.Coordinates,
		Dropoff:      req.Dropoff.Coordinates,
		ScheduledAt:  req.ScheduledAt,
		LoadFraction: fraction,
		Priority:     priority,
		ValueGBP:     valueGBP,
	}
}
