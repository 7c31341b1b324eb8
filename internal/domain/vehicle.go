package domain

import "time"

// VehicleCapacity describes the physical limits of one vehicle class.
// The reference fleet spec is the ~1000 kg / 15 m³ large van.
type VehicleCapacity struct {
	ID          string
	Type        string
	MaxWeightKg float64
	MaxVolumeM3 float64
	CrewSize    int
}

type ShiftStatus string

const (
	ShiftAvailable ShiftStatus = "available"
	ShiftBusy      ShiftStatus = "busy"
	ShiftOffline   ShiftStatus = "offline"
)

// DriverShift is one driver's availability window on a given date, as reported
// by the external fleet directory.
type DriverShift struct {
	DriverID        string
	Date            time.Time
	StartTime       string // "08:00"
	EndTime         string // "18:00"
	MaxWorkingHours float64
	VehicleID       string
	Status          ShiftStatus
}
